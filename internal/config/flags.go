package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/trainingkeeper/internal/flagx"
)

// ValueFlags lists every flag consuming a value, so the command dispatcher
// can tell flags apart from positional words.
var ValueFlags = []string{"-c", "-config", "-s", "-d", "-r", "-a", "-u", "-b", "-i", "-v", "-p", "-k", "-t", "-m", "-n", "-w"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-s string   store driver (postgres, sqlite, redis, memory)
//	-d string   database DSN
//	-r string   Redis address
//	-a string   asset source (http, s3, none)
//	-u string   asset base URL
//	-b string   S3 bucket
//	-i string   DHIS2 instance URL
//	-v string   instance version used when no instance URL is set
//	-p string   PoEditor API token
//	-k string   token secret
//	-t string   auth token of the acting user
//	-m string   comma-separated default module ids
//	-n int      max concurrency
//	-w int      HTTP timeout, seconds
//
// Unknown arguments are left for the command dispatcher.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-s", "-d", "-r", "-a", "-u", "-b", "-i", "-v", "-p", "-k", "-t", "-m", "-n", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.StoreDriver, "s", config.StoreDriver, "store driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.AssetSource, "a", config.AssetSource, "asset source")
	fs.StringVar(&config.AssetBaseURL, "u", config.AssetBaseURL, "asset base URL")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.InstanceURL, "i", config.InstanceURL, "DHIS2 instance URL")
	fs.StringVar(&config.InstanceVersion, "v", config.InstanceVersion, "instance version")
	fs.StringVar(&config.PoEditorToken, "p", config.PoEditorToken, "PoEditor API token")
	fs.StringVar(&config.TokenSecret, "k", config.TokenSecret, "token secret")
	fs.StringVar(&config.AuthToken, "t", config.AuthToken, "auth token")

	defaults := fs.String("m", strings.Join(config.DefaultModules, ","), "default module ids (comma-separated)")
	fs.IntVar(&config.MaxConcurrency, "n", config.MaxConcurrency, "max concurrency")
	timeout := fs.Int("w", int(config.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.DefaultModules = splitList(*defaults)
	config.HTTPTimeout = time.Duration(*timeout) * time.Second
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
