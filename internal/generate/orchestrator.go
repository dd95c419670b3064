package generate

import (
	"context"
	"fanhao/internal/domain/config"
	"fanhao/internal/domain/content"
	"fanhao/internal/logx"
	"html"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Request 描述一次生成。Input 是原始文本，用于校验和回退；Tag 只用于日志。
type Request struct {
	Kind   Kind
	Lang   content.Language
	Prompt string
	Input  string
	Tag    string
}

// Cache 是持久化的文本缓存，textcache.Store 满足该接口。
type Cache interface {
	Get(kind, lang, prompt string) (string, error)
	Put(kind, lang, prompt, value string) error
}

// HTMLFunc 把段落化的 markdown 转成 HTML。
type HTMLFunc func(markdown string) (string, error)

type Options struct {
	Attempts    int
	RetryDelay  time.Duration
	Timeout     time.Duration
	Temperature float32
	MaxTokens   map[Kind]int
	Cache       Cache
	HTML        HTMLFunc
	Logger      *slog.Logger
}

func OptionsFrom(cfg config.GenerationConfig) Options {
	return Options{
		Attempts:    cfg.Attempts,
		RetryDelay:  cfg.RetryDelay,
		Timeout:     cfg.Timeout,
		Temperature: cfg.Temperature,
		MaxTokens: map[Kind]int{
			KindTitle:   cfg.MaxTokens.Title,
			KindPhrase:  cfg.MaxTokens.Phrase,
			KindSummary: cfg.MaxTokens.Summary,
			KindReview:  cfg.MaxTokens.Review,
		},
	}
}

type Stats struct {
	Generated int64
	Fallbacks int64
	CacheHits int64
	MemoHits  int64
}

// Orchestrator 是所有生成文本的唯一入口：重试、校验、回退、去重都在这里完成。
// Generate 从不返回错误，也从不返回空文本。
type Orchestrator struct {
	svc Service
	opt Options
	log *slog.Logger

	group singleflight.Group
	mu    sync.Mutex
	memo  map[string]Text

	generated atomic.Int64
	fallbacks atomic.Int64
	cacheHits atomic.Int64
	memoHits  atomic.Int64
}

// NewOrchestrator 创建编排器。svc 为 nil 时所有请求直接回退。
func NewOrchestrator(svc Service, opt Options) *Orchestrator {
	if opt.Attempts <= 0 {
		opt.Attempts = 3
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	if opt.RetryDelay < 0 {
		opt.RetryDelay = 0
	}
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		svc:  svc,
		opt:  opt,
		log:  logx.Component(log, "generate"),
		memo: make(map[string]Text),
	}
}

// Available 表示是否配置了外部服务。
func (o *Orchestrator) Available() bool { return o.svc != nil }

func (o *Orchestrator) Stats() Stats {
	return Stats{
		Generated: o.generated.Load(),
		Fallbacks: o.fallbacks.Load(),
		CacheHits: o.cacheHits.Load(),
		MemoHits:  o.memoHits.Load(),
	}
}

func memoKey(req Request) string {
	return string(req.Kind) + "\x00" + string(req.Lang) + "\x00" + req.Prompt
}

func (o *Orchestrator) Generate(ctx context.Context, req Request) Text {
	if !req.Lang.Valid() {
		req.Lang = content.LangCN
	}
	// 只记忆标题和短语，长文本每个详情页只用一次
	if req.Kind == KindReview || req.Kind == KindSummary {
		return o.produce(ctx, req)
	}
	key := memoKey(req)

	o.mu.Lock()
	t, ok := o.memo[key]
	o.mu.Unlock()
	if ok {
		o.memoHits.Add(1)
		return t
	}

	// 同一个 key 的并发请求只调用一次服务
	v, _, _ := o.group.Do(key, func() (any, error) {
		o.mu.Lock()
		if t, ok := o.memo[key]; ok {
			o.mu.Unlock()
			return t, nil
		}
		o.mu.Unlock()

		t := o.produce(ctx, req)
		o.mu.Lock()
		o.memo[key] = t
		o.mu.Unlock()
		return t, nil
	})
	return v.(Text)
}

func (o *Orchestrator) fallback(req Request) Text {
	o.fallbacks.Add(1)
	return Text{Value: fallbackFor(req), Lang: req.Lang, Kind: req.Kind, Fallback: true}
}

func (o *Orchestrator) produce(ctx context.Context, req Request) Text {
	if o.svc == nil || strings.TrimSpace(req.Prompt) == "" {
		return o.fallback(req)
	}
	log := logx.FromContext(ctx, o.log).With("kind", req.Kind, "lang", req.Lang, "tag", req.Tag)

	if o.opt.Cache != nil {
		if v, err := o.opt.Cache.Get(string(req.Kind), string(req.Lang), req.Prompt); err == nil && v != "" {
			o.cacheHits.Add(1)
			return Text{Value: v, Lang: req.Lang, Kind: req.Kind}
		}
	}

	var lastErr error
	for attempt := 1; attempt <= o.opt.Attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, o.opt.RetryDelay); err != nil {
				lastErr = err
				break
			}
		}

		value, err := o.attempt(ctx, req)
		if err == nil {
			o.generated.Add(1)
			if o.opt.Cache != nil {
				if err := o.opt.Cache.Put(string(req.Kind), string(req.Lang), req.Prompt, value); err != nil {
					log.Warn("cache put failed", "err", err)
				}
			}
			return Text{Value: value, Lang: req.Lang, Kind: req.Kind}
		}
		lastErr = err
		log.Debug("generation attempt failed", "attempt", attempt, "err", err)
		if ctx.Err() != nil {
			break
		}
	}

	log.Warn("generation failed, using fallback", "attempts", o.opt.Attempts, "err", lastErr)
	return o.fallback(req)
}

func (o *Orchestrator) attempt(ctx context.Context, req Request) (string, error) {
	actx, cancel := context.WithTimeout(ctx, o.opt.Timeout)
	defer cancel()

	raw, err := o.svc.Complete(actx, Completion{
		Prompt:      req.Prompt,
		MaxTokens:   o.opt.MaxTokens[req.Kind],
		Temperature: o.opt.Temperature,
	})
	if err != nil {
		return "", err
	}
	text, ok := validate(req.Kind, req.Input, raw)
	if !ok {
		return "", ErrRejected
	}
	if req.Kind == KindReview {
		return o.reviewHTML(text)
	}
	return text, nil
}

func (o *Orchestrator) reviewHTML(text string) (string, error) {
	md := Paragraphs(text)
	if md == "" {
		return "", ErrRejected
	}
	if o.opt.HTML != nil {
		out, err := o.opt.HTML(md)
		if err != nil {
			return "", err
		}
		if out = strings.TrimSpace(out); out == "" {
			return "", ErrRejected
		}
		return out, nil
	}
	var b strings.Builder
	for _, p := range strings.Split(md, "\n\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(p))
		b.WriteString("</p>\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Localize 返回名称的双语版本：中文保持原文，英文为翻译结果。
func (o *Orchestrator) Localize(ctx context.Context, name string) content.Localized[string] {
	name = strings.TrimSpace(name)
	if name == "" {
		return content.Same("")
	}
	t := o.Generate(ctx, Request{
		Kind:   KindPhrase,
		Lang:   content.LangEN,
		Prompt: PhrasePrompt(name),
		Input:  name,
		Tag:    name,
	})
	return content.L(name, t.Value)
}

// TranslateList 逐个翻译短语，结果按首次出现的顺序去重。
func (o *Orchestrator) TranslateList(ctx context.Context, items []string) []Text {
	seen := make(map[string]struct{}, len(items))
	out := make([]Text, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		t := o.Generate(ctx, Request{
			Kind:   KindPhrase,
			Lang:   content.LangEN,
			Prompt: PhrasePrompt(item),
			Input:  item,
			Tag:    item,
		})
		k := strings.ToLower(t.Value)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}
