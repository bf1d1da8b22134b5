package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/evyataryagoni/countryselect/internal/config"
	"github.com/evyataryagoni/countryselect/internal/country"
	"github.com/evyataryagoni/countryselect/internal/locales"
	"github.com/evyataryagoni/countryselect/internal/models"
	"github.com/evyataryagoni/countryselect/internal/render"
	"github.com/evyataryagoni/countryselect/internal/service"
	"github.com/evyataryagoni/countryselect/internal/store"
	"github.com/spf13/cobra"
)

// listOptions are the flags of the list command
type listOptions struct {
	dir       string
	locale    string
	priority  string
	collation string
	selected  string
	object    string
	method    string
	html      bool
	json      bool
}

func listCmd(cfg *config.Config) *cobra.Command {
	opts := listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the country list of a locale",
		Long:  "Print the countries of a locale sorted by localized name, optionally headed by priority countries and a separator.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "directory of locale files (default: bundled data)")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", cfg.DefaultLocale, "locale to list")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "comma separated priority country codes, e.g. ES,CZ")
	cmd.Flags().StringVar(&opts.collation, "collation", cfg.Collation, "name ordering: ordinal or locale")
	cmd.Flags().StringVar(&opts.selected, "selected", "", "code to mark as selected (with --html)")
	cmd.Flags().StringVar(&opts.object, "object", "user", "form object name (with --html)")
	cmd.Flags().StringVar(&opts.method, "method", "country", "form field name (with --html)")
	cmd.Flags().BoolVar(&opts.html, "html", false, "render an HTML select tag")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON")
	return cmd
}

func runList(out io.Writer, opts listOptions) error {
	collation, err := country.ParseCollation(opts.collation)
	if err != nil {
		return err
	}

	s, err := openTableStore(opts.dir)
	if err != nil {
		return err
	}
	defer s.Close()

	items, err := country.BuildSelectList(s, opts.locale, service.ParseCodes(opts.priority), country.WithCollation(collation))
	if err != nil {
		return err
	}

	switch {
	case opts.html:
		html := render.Select(render.Field{Object: opts.object, Method: opts.method}, items, render.SelectOptions{Selected: opts.selected})
		_, err = fmt.Fprintln(out, html)
	case opts.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(models.CountryListResponse{Locale: opts.locale, Countries: models.NewCountryOptions(items)})
	default:
		err = writeText(out, items)
	}
	return err
}

// writeText prints "CODE  Name" rows and a dashed line for the separator
func writeText(out io.Writer, items []country.Item) error {
	for _, item := range items {
		var err error
		switch v := item.(type) {
		case country.Entry:
			_, err = fmt.Fprintf(out, "%s  %s\n", v.Code, v.Name)
		case country.Separator:
			_, err = fmt.Fprintln(out, "-------------")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func localesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List available locales",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openTableStore(dir)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.Locales()
			if err != nil {
				return err
			}
			for _, name := range names {
				codes, err := s.AllCodes(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", name, len(codes))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory of locale files (default: bundled data)")
	return cmd
}

func loadCmd(cfg *config.Config) *cobra.Command {
	var (
		target string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load locale data into Redis or a SQL database",
		Long:  "Read locale files (or the bundled data) and write every translation into the target store. Existing tables of the same locales are replaced.",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := openLoader(cfg, target)
			if err != nil {
				return err
			}
			defer loader.Close()
			return runLoad(cmd.OutOrStdout(), loader, dir)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "redis", "target store: redis, mysql or sqlite")
	cmd.Flags().StringVar(&dir, "dir", cfg.LocalesDir, "directory of locale files (bundled data when missing)")
	return cmd
}

// closingLoader is a store that can be filled and closed
type closingLoader interface {
	store.Loader
	Close() error
}

func openLoader(cfg *config.Config, target string) (closingLoader, error) {
	switch strings.ToLower(target) {
	case "redis":
		return store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "mysql", "sqlite":
		var (
			s   *store.SQLStore
			err error
		)
		if target == "mysql" {
			s, err = store.NewMySQLStore(cfg.MySQLDSN)
		} else {
			s, err = store.NewSQLiteStore(cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown target: %s (supported: 'redis', 'mysql', 'sqlite')", target)
	}
}

func runLoad(out io.Writer, loader store.Loader, dir string) error {
	table, source, err := locales.LoadDirOrBundled(dir)
	if err != nil {
		return err
	}

	count, err := loader.LoadTable(table)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Loaded %d translations for %d locales from %s\n", count, len(table.Locales()), source)
	return nil
}

// openTableStore serves locale files from dir, or the bundled data when dir is empty
func openTableStore(dir string) (store.Store, error) {
	if dir == "" {
		return store.NewEmbeddedStore()
	}
	return store.NewFileStore(dir)
}
