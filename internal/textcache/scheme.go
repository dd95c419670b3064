package textcache

var (
	bText  = []byte("text")  // key -> entry json
	bStats = []byte("stats") // kind -> hits(8)

	allBuckets = [][]byte{bText, bStats}
)
