// Package cli содержит команды editctl для редактирования товара из терминала.
package cli

import (
	"io"
	"time"

	"github.com/DRSN-tech/catalog-editor/internal/app"
	config "github.com/DRSN-tech/catalog-editor/internal/cfg"
	"github.com/DRSN-tech/catalog-editor/internal/usecase"
	"github.com/DRSN-tech/catalog-editor/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

// NewRootCmd собирает дерево команд editctl.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "editctl",
		Short:         "Edit catalog products from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "catalog API base URL (default $CATALOG_API_URL)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "catalog API request timeout, 0 for none")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newCategoriesCmd(opts),
		newEditCmd(opts),
	)

	return cmd
}

func (o *rootOptions) logger(cmd *cobra.Command) logger.Logger {
	level := zerolog.WarnLevel
	if o.verbose {
		level = zerolog.DebugLevel
	}

	return logger.NewWithWriter(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}, level)
}

// catalogAPI берёт адрес из флага, а при его отсутствии из окружения.
func (o *rootOptions) catalogAPI(log logger.Logger) (usecase.CatalogAPI, error) {
	apiCfg := &config.CatalogAPICfg{BaseURL: o.apiURL, Timeout: o.timeout}
	if apiCfg.BaseURL == "" {
		envCfg, err := config.LoadCatalogAPICfg(log)
		if err != nil {
			return nil, err
		}
		apiCfg.BaseURL = envCfg.BaseURL
		if apiCfg.Timeout == 0 {
			apiCfg.Timeout = envCfg.Timeout
		}
	}

	return app.NewCatalogAPI(apiCfg, log)
}
