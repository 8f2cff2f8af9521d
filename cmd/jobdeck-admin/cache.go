package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jobdeck/jobdeck-api/internal/bootstrap"
)

// cachePatterns covers every key family the API writes to Redis.
var cachePatterns = []string{"job_summary:*", "notif_unread:*"}

type cacheListOptions struct {
	Pattern string
	Limit   int
}

type cacheClearOptions struct {
	Pattern string
	DryRun  bool
	Yes     bool
}

func runListCacheKeys(cmdCtx *commandContext, args []string) error {
	opts, err := parseCacheListFlags(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedisOnly(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	patterns := cachePatterns
	if opts.Pattern != "" {
		patterns = []string{opts.Pattern}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Key\tTTL"); err != nil {
		return fmt.Errorf("write cache list header: %w", err)
	}

	total := 0
	for _, pattern := range patterns {
		n, scanErr := listCacheKeysForPattern(ctx, listCacheKeysRequest{
			Client:  client,
			Logger:  cmdCtx.Logger,
			Pattern: pattern,
			Limit:   opts.Limit,
			Seen:    total,
			Out:     w,
		})
		if scanErr != nil {
			return scanErr
		}
		total += n
		if opts.Limit > 0 && total >= opts.Limit {
			break
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush cache list: %w", err)
	}
	if total == 0 {
		return writeln(os.Stdout, "(no cache keys found)")
	}
	return writef(os.Stdout, "\nTotal keys: %d\n", total)
}

type listCacheKeysRequest struct {
	Client  redis.UniversalClient
	Logger  *slog.Logger
	Pattern string
	Limit   int
	Seen    int
	Out     *tabwriter.Writer
}

func listCacheKeysForPattern(ctx context.Context, req listCacheKeysRequest) (int, error) {
	req.Logger.Info("scanning redis", "pattern", req.Pattern)

	iter := req.Client.Scan(ctx, 0, req.Pattern, 100).Iterator()
	count := 0
	for iter.Next(ctx) {
		if req.Limit > 0 && req.Seen+count >= req.Limit {
			break
		}
		key := iter.Val()
		count++

		ttl, ttlErr := req.Client.TTL(ctx, key).Result()
		if ttlErr != nil {
			if err := writef(req.Out, "%s\terror: %v\n", key, ttlErr); err != nil {
				return 0, fmt.Errorf("write cache key row: %w", err)
			}
			continue
		}
		if err := writef(req.Out, "%s\t%s\n", key, renderTTL(ttl)); err != nil {
			return 0, fmt.Errorf("write cache key row: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("redis scan: %w", err)
	}
	return count, nil
}

func runClearCache(cmdCtx *commandContext, args []string) error {
	opts, err := parseCacheClearFlags(args)
	if err != nil {
		return err
	}
	if confirmErr := confirmAction(cacheClearConfirmOptions{opts}, "clear cache entries"); confirmErr != nil {
		return confirmErr
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, 2*time.Minute)
	defer cancel()

	client, err := connectRedisOnly(cmdCtx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	patterns := cachePatterns
	if opts.Pattern != "" {
		patterns = []string{opts.Pattern}
	}

	var total, deleted int64
	for _, pattern := range patterns {
		t, d, clearErr := clearCacheKeysForPattern(ctx, client, cmdCtx.Logger, pattern, opts.DryRun)
		if clearErr != nil {
			return clearErr
		}
		total += t
		deleted += d
	}

	if total == 0 {
		return writeln(os.Stdout, "No cache keys found in Redis")
	}
	if opts.DryRun {
		return writef(os.Stdout, "Dry-run: would delete %d/%d keys\n", deleted, total)
	}
	return writef(os.Stdout, "Deleted %d/%d keys\n", deleted, total)
}

func clearCacheKeysForPattern(
	ctx context.Context,
	client redis.UniversalClient,
	logger *slog.Logger,
	pattern string,
	dryRun bool,
) (int64, int64, error) {
	logger.Info("scanning redis", "pattern", pattern, "dry_run", dryRun)

	const batchCap = 1000
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, batchCap)

	var total, deleted int64
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if dryRun {
			deleted += int64(len(batch))
			batch = batch[:0]
			return nil
		}
		n, delErr := client.Del(ctx, batch...).Result()
		if delErr != nil {
			return fmt.Errorf("delete %d keys: %w", len(batch), delErr)
		}
		deleted += n
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		total++
		batch = append(batch, iter.Val())
		if len(batch) == batchCap {
			if err := flush(); err != nil {
				return total, deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return total, deleted, fmt.Errorf("redis scan: %w", err)
	}
	if err := flush(); err != nil {
		return total, deleted, err
	}
	return total, deleted, nil
}

// connectRedisOnly opens just the Redis client for cache commands.
//
//nolint:ireturn // returning redis.UniversalClient keeps the cache layer client-agnostic.
func connectRedisOnly(cmdCtx *commandContext) (redis.UniversalClient, error) {
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func parseCacheListFlags(args []string) (cacheListOptions, error) {
	fs := flag.NewFlagSet("list-cache-keys", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts cacheListOptions
	fs.StringVar(&opts.Pattern, "pattern", "", "Override the key pattern to scan (defaults to all cache families)")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum keys to display (0 for unlimited)")

	if err := fs.Parse(args); err != nil {
		return cacheListOptions{}, err
	}
	if opts.Limit < 0 {
		return cacheListOptions{}, errors.New("--limit must not be negative")
	}
	return opts, nil
}

func parseCacheClearFlags(args []string) (cacheClearOptions, error) {
	fs := flag.NewFlagSet("clear-cache", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts cacheClearOptions
	fs.StringVar(&opts.Pattern, "pattern", "", "Override the key pattern to clear (defaults to all cache families)")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Print actions without executing")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return cacheClearOptions{}, err
	}
	return opts, nil
}

type cacheClearConfirmOptions struct {
	opts cacheClearOptions
}

func (c cacheClearConfirmOptions) IsDryRun() bool { return c.opts.DryRun }
func (c cacheClearConfirmOptions) IsYes() bool    { return c.opts.Yes }
func (c cacheClearConfirmOptions) GetWarning() string {
	return "WARNING: this will remove cached job summaries and unread counters; the API repopulates them on demand."
}

func (c cacheClearConfirmOptions) GetTarget() string {
	if c.opts.Pattern != "" {
		return fmt.Sprintf("pattern %q", c.opts.Pattern)
	}
	return "all cache key families"
}

func renderTTL(d time.Duration) string {
	switch d {
	case -1 * time.Second:
		return "no expiry"
	case -2 * time.Second:
		return "key missing"
	default:
		return d.String()
	}
}
