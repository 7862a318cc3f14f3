// Package commands implements dinectl, a terminal front end that loads the
// directory from the upstream API and runs the search engine locally.
package commands

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dishfinder/client"
	"dishfinder/logging"
	"dishfinder/models"
)

type options struct {
	apiURL  string
	timeout time.Duration
	verbose bool
	asJSON  bool

	log *zap.Logger
	api *client.Client
}

// loadDirectory fetches the whole directory. A fetch failure has already been
// logged and yields an empty directory; it is returned so commands can tell
// the user the data is unavailable.
func (o *options) loadDirectory(ctx context.Context) (models.Directory, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	return o.api.FetchDirectory(ctx)
}

func NewRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "dinectl",
		Short:         "Search the restaurant directory by county and dish",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if o.verbose {
				l, err := logging.New(logging.Development)
				if err != nil {
					return err
				}
				o.log = l
			} else {
				o.log = zap.NewNop()
			}
			o.api = client.New(o.apiURL, &http.Client{Timeout: o.timeout}, o.log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&o.apiURL, "api", "http://localhost:3000", "restaurant API base URL")
	root.PersistentFlags().DurationVar(&o.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log requests to stderr")
	root.PersistentFlags().BoolVar(&o.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(searchCmd(o), recommendCmd(o), showCmd(o), countiesCmd(o))
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}
