package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type Options struct {
	Config   string
	Verbose  bool
	Markdown bool
}

func NewRootCmd() *cobra.Command {
	opts := &Options{}
	root := &cobra.Command{
		Use:          "syl",
		Short:        "syl - chat with Claude from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(opts.Config)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.Config, "config", "", "config file (default: ./syl.yaml)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "write debug logs to stderr")
	flags.String("model", "", "model name, e.g. claude-sonnet-4-20250514")
	flags.Int("max-tokens", 0, "maximum tokens per reply")
	flags.String("url", "", "override api base url")
	root.Flags().BoolVar(&opts.Markdown, "markdown", false, "render replies as markdown")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("anthropic.model", flags.Lookup("model"))
	_ = viper.BindPFlag("anthropic.max_tokens", flags.Lookup("max-tokens"))
	_ = viper.BindPFlag("anthropic.url", flags.Lookup("url"))

	root.AddCommand(newAskCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

func initConfig(configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("syl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/syl")
	}

	viper.SetEnvPrefix("SYL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := viper.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY", "SYL_ANTHROPIC_API_KEY"); err != nil {
		return err
	}
	if err := viper.BindEnv("anthropic.version"); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		fmt.Fprintln(os.Stderr, err.Error())
	}
	return nil
}
