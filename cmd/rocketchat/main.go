// rocketchat is a small operator tool for a Rocket.Chat server. It logs in
// with a password or a personal access token, runs one command and prints
// the result line by line.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	rocketchat "github.com/peteraglen/rocketchat-go-client"
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	var flags cliFlags

	flagSet := pflag.NewFlagSet("rocketchat", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flags.register(flagSet)
	flagSet.Usage = func() { printHelp(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}

	if len(rest)-1 < cmd.minArgs || len(rest)-1 > cmd.maxArgs {
		return fmt.Errorf("%w: rocketchat %s", errUsage, cmd.usage)
	}

	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	flags.apply(cfg, flagSet, getenv)

	server := rocketchat.New(cfg.Server, serverOptions(cfg, stderr)...)
	if err := server.Connect(ctx); err != nil {
		return err
	}

	if !cmd.needsSession {
		return cmd.run(ctx, &commandEnv{server: server, out: stdout}, rest[1:])
	}

	if err := cfg.validate(); err != nil {
		return err
	}

	session, logout, err := openSession(ctx, server, cfg)
	if err != nil {
		return err
	}
	defer logout()

	return cmd.run(ctx, &commandEnv{server: server, session: session, out: stdout}, rest[1:])
}

func serverOptions(cfg *config, stderr io.Writer) []rocketchat.Option {
	opts := []rocketchat.Option{
		rocketchat.WithTimeout(cfg.Timeout),
		rocketchat.WithInsecureSkipVerify(cfg.Insecure),
	}

	if cfg.CAFile != "" {
		opts = append(opts, rocketchat.WithRootCertificate(cfg.CAFile))
	}

	if cfg.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, rocketchat.WithRequestLogger(rocketchat.NewSlogLogger(logger)))
	}

	return opts
}

// openSession logs in with the configured credentials. Password sessions
// are logged out again by the returned func; token sessions are left alone.
func openSession(ctx context.Context, server *rocketchat.Server, cfg *config) (*rocketchat.Session, func(), error) {
	if cfg.AuthToken != "" {
		session, err := server.SessionFromToken(rocketchat.NewToken(cfg.AuthToken, cfg.UserID))
		return session, func() {}, err
	}

	session, err := server.Login(ctx, cfg.Username, cfg.Password)
	if err != nil {
		return nil, nil, err
	}

	return session, func() {
		_ = session.Logout(context.WithoutCancel(ctx))
	}, nil
}

type commandEnv struct {
	server  *rocketchat.Server
	session *rocketchat.Session
	out     io.Writer
}

func (e *commandEnv) printf(format string, v ...any) {
	fmt.Fprintf(e.out, format, v...)
}

type command struct {
	usage        string
	summary      string
	minArgs      int
	maxArgs      int
	needsSession bool
	run          func(ctx context.Context, env *commandEnv, args []string) error
}

var commands = map[string]command{
	"info": {
		usage:   "info",
		summary: "print the server version",
		run:     runInfo,
	},
	"me": {
		usage:        "me",
		summary:      "print the logged in user",
		needsSession: true,
		run:          runMe,
	},
	"channels": {
		usage:        "channels [query]",
		summary:      "list public channels, optionally filtered by name",
		maxArgs:      1,
		needsSession: true,
		run:          runChannels,
	},
	"groups": {
		usage:        "groups",
		summary:      "list private groups of the user",
		needsSession: true,
		run:          runGroups,
	},
	"users": {
		usage:        "users [query]",
		summary:      "list users, optionally filtered by username",
		maxArgs:      1,
		needsSession: true,
		run:          runUsers,
	},
	"user": {
		usage:        "user <username>",
		summary:      "print a user and their rooms",
		minArgs:      1,
		maxArgs:      1,
		needsSession: true,
		run:          runUser,
	},
	"post": {
		usage:        "post <room> <text>",
		summary:      "post a message to #channel or @user",
		minArgs:      2,
		maxArgs:      2,
		needsSession: true,
		run:          runPost,
	},
	"setting": {
		usage:        "setting <id>",
		summary:      "print the value of a server setting",
		minArgs:      1,
		maxArgs:      1,
		needsSession: true,
		run:          runSetting,
	},
}

func runInfo(ctx context.Context, env *commandEnv, _ []string) error {
	info, err := env.server.Info(ctx)
	if err != nil {
		return err
	}

	env.printf("version\t%s\n", info.Version())
	return nil
}

func runMe(ctx context.Context, env *commandEnv, _ []string) error {
	me, err := env.session.Me(ctx)
	if err != nil {
		return err
	}

	env.printf("%s\t%s\t%s\t%s\n", me.ID(), me.Username(), me.Name(), me.Status())
	return nil
}

// nameFilter builds a case-insensitive regex query document on key.
func nameFilter(key string, args []string) any {
	if len(args) == 0 {
		return nil
	}

	return map[string]any{key: map[string]string{"$regex": args[0], "$options": "i"}}
}

func runChannels(ctx context.Context, env *commandEnv, args []string) error {
	rooms, err := env.session.Channels().List(ctx, rocketchat.ListOptions{Query: nameFilter("name", args)})
	if err != nil {
		return err
	}

	printRooms(env, rooms)
	return nil
}

func runGroups(ctx context.Context, env *commandEnv, _ []string) error {
	rooms, err := env.session.Groups().List(ctx, rocketchat.ListOptions{})
	if err != nil {
		return err
	}

	printRooms(env, rooms)
	return nil
}

func printRooms(env *commandEnv, rooms []*rocketchat.Room) {
	for _, room := range rooms {
		env.printf("%s\t%s\t%s\t%d\n", room.ID(), room.Name(), room.Type(), room.MessageCount())
	}
}

func runUsers(ctx context.Context, env *commandEnv, args []string) error {
	users, err := env.session.Users().List(ctx, rocketchat.ListOptions{Query: nameFilter("username", args)})
	if err != nil {
		return err
	}

	for _, user := range users {
		env.printf("%s\t%s\t%s\n", user.ID(), user.Username(), user.Name())
	}

	return nil
}

func runUser(ctx context.Context, env *commandEnv, args []string) error {
	user, err := env.session.Users().Info(ctx, rocketchat.ByUsername(args[0]), true)
	if err != nil {
		return err
	}

	if user == nil {
		return fmt.Errorf("user %q not found", args[0])
	}

	env.printf("id\t%s\n", user.ID())
	env.printf("username\t%s\n", user.Username())
	env.printf("name\t%s\n", user.Name())
	env.printf("email\t%s\n", user.Email())
	env.printf("roles\t%s\n", strings.Join(user.Roles(), ","))
	env.printf("active\t%t\n", user.Active())

	for _, room := range user.Rooms() {
		env.printf("room\t%s\t%s\n", room.ID(), room.Name())
	}

	return nil
}

func runPost(ctx context.Context, env *commandEnv, args []string) error {
	msg, err := env.session.Chat().PostMessage(ctx, rocketchat.RoomSelector{}, rocketchat.PostMessageOptions{
		Channel: args[0],
		Text:    args[1],
	})
	if err != nil {
		return err
	}

	env.printf("%s\t%s\n", msg.ID(), msg.RoomID())
	return nil
}

func runSetting(ctx context.Context, env *commandEnv, args []string) error {
	value, err := env.session.Settings().Get(ctx, args[0])
	if err != nil {
		return err
	}

	env.printf("%v\n", value)
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n  rocketchat [flags] <command> [args]\n\nCommands:\n")

	for _, name := range []string{"info", "me", "channels", "groups", "users", "user", "post", "setting"} {
		cmd := commands[name]
		fmt.Fprintf(w, "  %-20s %s\n", cmd.usage, cmd.summary)
	}

	fmt.Fprintf(w, "\nFlags:\n")
	fmt.Fprint(w, flagSet.FlagUsages())
}
