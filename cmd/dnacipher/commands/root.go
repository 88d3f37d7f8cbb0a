package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Danishprabhu04/image-encrypt/cipher"
	"github.com/Danishprabhu04/image-encrypt/config"
	"github.com/Danishprabhu04/image-encrypt/logging"
)

var (
	configPath string
	verbose    bool
	debug      bool

	cfg    config.Config
	logger zerolog.Logger
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dnacipher",
		Short:         "Encrypt and decrypt images with a DNA-coded chaotic cipher",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			level := "warn"
			switch {
			case debug:
				level = "trace"
			case verbose:
				level = "debug"
			}
			logger = logging.New(logging.Options{Level: level, Pretty: true, Writer: os.Stderr})
			logger.Debug().Str("config", configPath).Bool("parallel", cfg.Parallel).Msg("settings loaded")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("DNACIPHER_CONFIG"), "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.AddCommand(encryptCmd(), decryptCmd(), analyzeCmd(), keygenCmd(), configCmd())
	return root
}

func newCipher() *cipher.Cipher {
	return cipher.New(cipher.WithLogger(logger), cipher.WithParallel(cfg.Parallel))
}
