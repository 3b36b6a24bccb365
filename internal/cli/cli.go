package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hamidzr/tmplstore/constant"
	"github.com/hamidzr/tmplstore/internal/config"
	"github.com/hamidzr/tmplstore/internal/logger"
	"github.com/hamidzr/tmplstore/model"
	"github.com/hamidzr/tmplstore/store"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// storeFactory builds a store from the resolved config. It is only valid
// once the root command's PersistentPreRunE has run.
type storeFactory func() *store.ConfigStore

func InitCLI() *cobra.Command {
	var cfg *model.Config

	RootCmd := &cobra.Command{
		Use:           constant.ProjectName,
		Short:         "tmplstore saves and loads the config templates document",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// initialize configuration with proper priority handling
			c, err := config.InitConfig(cmd)
			if err != nil {
				return model.NewUsageError("failed to initialize config: %w", err)
			}
			if err := logger.SetupLogger(c.LogLevel); err != nil {
				return model.NewExitError(model.UsageError, err)
			}
			cfg = c
			logrus.WithFields(logrus.Fields{"work_dir": cfg.WorkDir, "executable": cfg.Executable}).Trace("config loaded")
			return nil
		},
	}

	config.BindFlags(RootCmd)

	newStore := func() *store.ConfigStore {
		return store.NewFileStore(store.Env{WorkDir: cfg.WorkDir, ExecPath: cfg.Executable})
	}

	RootCmd.AddCommand(
		newSaveCmd(newStore),
		newLoadCmd(newStore),
		newPathsCmd(newStore),
		newWatchCmd(newStore),
		newInitConfigCmd(),
	)

	return RootCmd
}

func newSaveCmd(newStore storeFactory) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "save [content]",
		Short: "Save the templates document, replacing any existing one",
		Long: `Save the templates document verbatim.

The content is taken from the argument, the --file flag, or standard input
when it is not a terminal, in that order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, args, file)
			if err != nil {
				return err
			}
			if err := newStore().Save(content); err != nil {
				return storeExitError(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the document from this file")
	return cmd
}

func newLoadCmd(newStore storeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Print the templates document",
		Long: `Print the templates document exactly as stored, with no newline added,
so the output can be fed back to save unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := newStore().Load()
			if err != nil {
				return storeExitError(err)
			}
			return printDocument(cmd.OutOrStdout(), doc, false)
		},
	}
}

func newPathsCmd(newStore storeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the candidate data directories in search order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printPaths(cmd.OutOrStdout(), newStore())
		},
	}
}

func newWatchCmd(newStore storeFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the templates document, then again on every change",
		Long: `Print the templates document, then again every time it changes, until
interrupted.

Each document is printed exactly as load prints it, followed by a newline
when it does not already end with one, so every document starts on its own
line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st := newStore()
			out := cmd.OutOrStdout()
			doc, err := st.Load()
			if err != nil {
				return storeExitError(err)
			}
			if err := printDocument(out, doc, true); err != nil {
				return err
			}

			err = st.Watch(ctx, func(doc string) {
				if err := printDocument(out, doc, true); err != nil {
					logrus.WithError(err).Warn("failed to print templates")
				}
			})
			if err != nil {
				return storeExitError(err)
			}
			return nil
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Generate and save a default config file",
		Args:  cobra.NoArgs,
		// a broken existing config must not block generating a new one
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := config.InitConfigFile()
			if err != nil {
				return errors.Wrap(err, "failed to initialize config")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ Config file created successfully at: %s\n", configPath)
			fmt.Fprintf(out, "📝 Edit the file to customize your settings\n")
			return nil
		},
	}
}

// readContent picks the document from the argument, --file, or stdin.
func readContent(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", model.NewUsageError("provide the content either as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", model.NewExitError(model.IoFailure, errors.Wrapf(err, "failed to read %s", file))
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", model.NewUsageError("no content given: pass it as an argument, with --file, or on standard input")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", model.NewExitError(model.IoFailure, errors.Wrap(err, "error reading standard input"))
	}
	return string(data), nil
}

// printDocument writes doc verbatim. With terminate set it adds a newline
// unless doc already ends with one.
func printDocument(out io.Writer, doc string, terminate bool) error {
	if terminate && !strings.HasSuffix(doc, "\n") {
		doc += "\n"
	}
	_, err := io.WriteString(out, doc)
	return err
}

func printPaths(out io.Writer, st *store.ConfigStore) error {
	states, err := st.Inspect()
	if err != nil {
		return storeExitError(err)
	}

	saveTarget, err := st.DataDir()
	if err != nil && store.KindOf(err) != store.ResolutionError {
		return storeExitError(err)
	}
	loadSourceSeen := false

	for i, state := range states {
		status := "missing"
		switch {
		case state.Exists:
			status = "exists"
		case state.ParentExists:
			status = "parent exists"
		}
		if state.HasFile {
			status += ", has " + constant.TemplatesFileName
		}

		var tags string
		if state.Path == saveTarget && saveTarget != "" {
			tags += " (save target)"
			saveTarget = ""
		}
		if state.HasFile && !loadSourceSeen {
			tags += " (load source)"
			loadSourceSeen = true
		}
		fmt.Fprintf(out, "%d. %s [%s]%s\n", i+1, state.Path, status, tags)
	}

	if store.KindOf(err) == store.ResolutionError {
		fmt.Fprintln(out, "no usable data directory: save will fail")
	}
	if !loadSourceSeen {
		fmt.Fprintln(out, "no templates file: load returns the empty templates document")
	}
	return nil
}

// storeExitError attaches the exit code matching the store error kind.
func storeExitError(err error) error {
	code := model.UnknownError
	switch store.KindOf(err) {
	case store.EnvironmentError:
		code = model.EnvironmentFailure
	case store.ResolutionError:
		code = model.ResolutionFailure
	case store.IoError:
		code = model.IoFailure
	}
	return model.NewExitError(code, err)
}
