package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"hookline/internal/config"
	"hookline/internal/credit"
	"hookline/internal/errors"
	"hookline/internal/llm"
	"hookline/internal/logging"
	"hookline/internal/ops"
	"hookline/internal/store"
	"hookline/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(st *store.Store, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "hookline",
		Usage:   "Viral-script and hook generator store",
		Version: Version,
		Commands: []*cli.Command{
			loginCmd(st, cfg),
			userCmd(st),
			creditsCmd(st),
			passwdCmd(st),
			generateCmd(st, cfg),
			scriptCmd(st),
			hookCmd(st),
			listCmd(st, cfg),
			showCmd(st),
			suggestCmd(cfg),
			wipeCmd(st),
			exportCmd(st),
			serveCmd(st, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// loginCmd creates the login command.
func loginCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Verify credentials and report the account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (reads stdin when piped)"},
		},
		Action: func(c *cli.Context) error {
			password := c.String("password")
			if password == "" && stdinHasData() {
				var err error
				password, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			output, err := ops.Login(st, cfg, ops.LoginInput{
				Username: c.String("username"),
				Password: password,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// userCmd creates the user command group.
func userCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage user accounts",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a user with a starting balance",
				ArgsUsage: "<username>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "credits", Aliases: []string{"c"}, Usage: "Starting credit balance"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.AddUser(st, ops.AddUserInput{
						Username: c.Args().First(),
						Credits:  c.Int("credits"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "remove",
				Usage:     "Delete a user and their conversations",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					output, err := ops.RemoveUser(st, ops.RemoveUserInput{
						Username: c.Args().First(),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List all users with balances and usage counters",
				Action: func(_ *cli.Context) error {
					output, err := ops.ListUsers(st)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// creditsCmd creates the credits command group.
func creditsCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "credits",
		Usage: "Inspect and adjust credit balances",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Show a user's balance",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					output, err := ops.GetCredits(st, ops.GetCreditsInput{
						Username: c.Args().First(),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "set",
				Usage:     "Overwrite a user's balance",
				ArgsUsage: "<username> <amount>",
				Action: func(c *cli.Context) error {
					amount, err := parseAmount(c.Args().Get(1))
					if err != nil {
						return outputError(err)
					}
					output, err := ops.SetCredits(st, ops.SetCreditsInput{
						Username: c.Args().First(),
						Credits:  amount,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "deduct",
				Usage:     "Deduct from a user's balance",
				ArgsUsage: "<username> <amount>",
				Action: func(c *cli.Context) error {
					amount, err := parseAmount(c.Args().Get(1))
					if err != nil {
						return outputError(err)
					}
					output, err := ops.DeductCredits(st, ops.DeductCreditsInput{
						Username: c.Args().First(),
						Amount:   amount,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// passwdCmd creates the passwd command.
func passwdCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "passwd",
		Usage: "Rotate the shared password (reads the new password from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "New password (prefer piping via stdin)"},
		},
		Action: func(c *cli.Context) error {
			password := c.String("password")
			if password == "" {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("pipe the new password via stdin or pass --password"))
				}
				var err error
				password, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			output, err := ops.UpdateGlobalPassword(st, ops.UpdatePasswordInput{Password: password})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// generateCmd creates the generate command group. Generation calls out to the
// model, debiting credits up front and refunding on failure.
func generateCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate scripts and hooks via the model",
		Subcommands: []*cli.Command{
			{
				Name:  "script",
				Usage: "Generate a script for an animal subject",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
					&cli.BoolFlag{Name: "stream", Usage: "Stream generation deltas to stderr"},
				},
				Action: func(c *cli.Context) error {
					coord, gw := generationDeps(st, cfg)
					output, err := ops.GenerateScript(context.Background(), st, cfg, coord, gw, ops.GenerateScriptInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Admin:    isAdminUser(cfg, c.String("username")),
						Sink:     streamSink(c.Bool("stream")),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "hooks",
				Usage: "Generate a hook-set from a conversation's scripts",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
					&cli.BoolFlag{Name: "stream", Usage: "Stream generation deltas to stderr"},
				},
				Action: func(c *cli.Context) error {
					coord, gw := generationDeps(st, cfg)
					output, err := ops.GenerateHooks(context.Background(), st, cfg, coord, gw, ops.GenerateHooksInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Admin:    isAdminUser(cfg, c.String("username")),
						Sink:     streamSink(c.Bool("stream")),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// scriptCmd creates the script command group for manual script editing.
func scriptCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "script",
		Usage: "Manually add, update, or delete scripts",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Append a script (reads content from stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
				},
				Action: func(c *cli.Context) error {
					content, err := requireStdin("script content")
					if err != nil {
						return outputError(err)
					}
					output, err := ops.AppendScript(st, ops.AppendScriptInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Content:  content,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "update",
				Usage: "Replace a script at an index (reads content from stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
					&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "Script index (0-based)"},
				},
				Action: func(c *cli.Context) error {
					content, err := requireStdin("script content")
					if err != nil {
						return outputError(err)
					}
					output, err := ops.UpdateScript(st, ops.UpdateScriptInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Index:    c.Int("index"),
						Content:  content,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a script at an index",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
					&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "Script index (0-based)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.DeleteScript(st, ops.DeleteScriptInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Index:    c.Int("index"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// hookCmd creates the hook command group for manual hook-set editing.
func hookCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "hook",
		Usage: "Manually add, update, or delete hook-sets",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Append a hook-set to a conversation (reads content from stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "id", Required: true, Usage: "Conversation id"},
				},
				Action: func(c *cli.Context) error {
					content, err := requireStdin("hook content")
					if err != nil {
						return outputError(err)
					}
					output, err := ops.AppendHook(st, ops.AppendHookInput{
						Username:       c.String("username"),
						ConversationID: c.String("id"),
						Content:        content,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "update",
				Usage: "Replace a hook-set at an index (reads content from stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
					&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "Hook-set index (0-based)"},
				},
				Action: func(c *cli.Context) error {
					content, err := requireStdin("hook content")
					if err != nil {
						return outputError(err)
					}
					output, err := ops.UpdateHook(st, ops.UpdateHookInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Index:    c.Int("index"),
						Content:  content,
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "delete",
				Usage: "Delete a hook-set at an index",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
					&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Required: true, Usage: "Animal subject"},
					&cli.IntFlag{Name: "index", Aliases: []string{"i"}, Required: true, Usage: "Hook-set index (0-based)"},
				},
				Action: func(c *cli.Context) error {
					output, err := ops.DeleteHook(st, ops.DeleteHookInput{
						Username: c.String("username"),
						Subject:  c.String("animal"),
						Index:    c.Int("index"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// listCmd creates the list command.
func listCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List a user's conversations",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListConversations(st, ops.ListConversationsInput{
				Username: c.String("username"),
				TTL:      cfg.TTL(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show one conversation in full, by animal or by id",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
			&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Usage: "Animal subject"},
			&cli.StringFlag{Name: "id", Usage: "Conversation id"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Fetch(st, ops.FetchInput{
				Username:       c.String("username"),
				Subject:        c.String("animal"),
				ConversationID: c.String("id"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Suggest animal subjects from the configured pool",
		Action: func(_ *cli.Context) error {
			return outputJSON(ops.SuggestSubjects(cfg))
		},
	}
}

// wipeCmd creates the wipe command.
func wipeCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "wipe",
		Usage: "Delete a user's conversations, or every conversation",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "Username"},
			&cli.BoolFlag{Name: "all", Usage: "Wipe every user's conversations"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("all") && c.String("username") == "" {
				return outputError(errors.NewInvalidRequest("pass --username or --all"))
			}
			output, err := ops.Wipe(st, ops.WipeInput{
				Username: c.String("username"),
				All:      c.Bool("all"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(st *store.Store) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a user's conversations to a markdown file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true, Usage: "Username"},
			&cli.StringFlag{Name: "animal", Aliases: []string{"a"}, Usage: "Export only this conversation"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Destination path"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(st, ops.ExportInput{
				Username: c.String("username"),
				Subject:  c.String("animal"),
				Path:     c.String("output"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command for the read-only web viewer.
func serveCmd(st *store.Store, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the read-only web viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8787, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)
			srv := web.NewServer(st, cfg, log, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv, log); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// generationDeps builds the shared dependencies for generation commands.
// Warnings and refund failures log to stderr.
func generationDeps(st *store.Store, cfg *config.Config) (*credit.Coordinator, llm.Gateway) {
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)
	return credit.NewCoordinator(st, log), llm.NewAnthropicGateway(cfg, log)
}

// isAdminUser reports whether the username matches the configured admin
// identity. Admin generation skips the debit/refund cycle.
func isAdminUser(cfg *config.Config, username string) bool {
	return cfg.AdminUsername != "" && username == cfg.AdminUsername
}

// streamSink returns the delta sink for generation. Deltas go to stderr so
// stdout stays valid JSON.
func streamSink(stream bool) io.Writer {
	if !stream {
		return nil
	}
	return os.Stderr
}

// requireStdin reads piped content, rejecting interactive invocations.
func requireStdin(what string) (string, error) {
	if !stdinHasData() {
		return "", errors.NewInvalidRequest(what + " must be piped via stdin")
	}
	content, err := readStdin()
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if content == "" {
		return "", errors.NewInvalidRequest(what + " is required")
	}
	return content, nil
}

// outputJSON outputs the result as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if hErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", hErr.Code, hErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseAmount parses a positional credit amount.
func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid amount %q", s))
	}
	return n, nil
}
