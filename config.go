package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind        string
	port        int
	mongoURI    string
	redisURI    string
	jwtSecret   string
	baseURL     string
	memoryStore bool
	version     bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.jwtSecret == "" {
		return errors.New("--jwt-secret must be set")
	}
	if !c.memoryStore && c.redisURI == "" {
		return errors.New("--redis-uri must be set unless --memory-store is used")
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SLIMSTE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "deslimste",
		Short:         "Party quiz server where every team races the same countdown of seconds.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SLIMSTE_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: SLIMSTE_PORT)")
	fs.StringVar(&cfg.mongoURI, "mongo-uri", "mongodb://localhost:27017", "MongoDB connection string (env: SLIMSTE_MONGO_URI)")
	fs.StringVar(&cfg.redisURI, "redis-uri", "localhost:6379", "Redis address (env: SLIMSTE_REDIS_URI)")
	fs.StringVar(&cfg.jwtSecret, "jwt-secret", "", "secret for signing admin and team tokens (env: SLIMSTE_JWT_SECRET)")
	fs.StringVar(&cfg.baseURL, "base-url", "http://localhost:8080", "public URL used on the join card (env: SLIMSTE_BASE_URL)")
	fs.BoolVar(&cfg.memoryStore, "memory-store", false, "use the in-memory store instead of Redis (env: SLIMSTE_MEMORY_STORE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: SLIMSTE_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("deslimste v{{.Version}}\n")

	return cmd
}
