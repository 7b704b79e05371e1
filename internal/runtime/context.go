package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"stackit.dev/gitmenu/internal/config"
	"stackit.dev/gitmenu/internal/git"
	"stackit.dev/gitmenu/internal/github"
	"stackit.dev/gitmenu/internal/output"
	"stackit.dev/gitmenu/internal/process"
	"stackit.dev/gitmenu/internal/session"
)

// Context provides access to the session and its collaborators for commands
type Context struct {
	Repo     *git.Repository
	Engine   *process.Engine
	Session  *session.Session
	Settings config.Settings
	Splog    *output.Splog
	RepoRoot string
}

// Options controls how a Context is built
type Options struct {
	// Dir is any directory inside the repository; "" means the working directory
	Dir string
	// GitBinary overrides the configured git executable
	GitBinary string
	// UserConfigPath overrides the user configuration location; "-" skips it
	UserConfigPath string
	// Debug enables debug output on the console
	Debug bool
	// Stdout receives console log output; nil means os.Stdout
	Stdout io.Writer
	// LogFile overrides the rotated log file; "-" disables it
	LogFile string
}

// NewContext opens the repository containing opts.Dir, resolves the
// configuration and wires a session for it
func NewContext(ctx context.Context, opts Options) (*Context, error) {
	splog, err := newSplog(opts)
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	probe, err := git.OpenRepository(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	root := probe.Root()

	userPath := opts.UserConfigPath
	switch userPath {
	case "-":
		userPath = ""
	case "":
		if userPath, err = config.UserConfigPath(); err != nil {
			splog.Debug("no user configuration: %v", err)
			userPath = ""
		}
	}

	settings, err := config.Load(root, userPath, config.Overrides{GitBinary: opts.GitBinary})
	if err != nil {
		return nil, err
	}

	runner := git.NewCommandRunner(settings.GitBinary, root)
	if settings.Editor != "" {
		runner.SetEnv("GIT_EDITOR=" + settings.Editor)
	}
	repo, err := git.OpenRepository(root, runner)
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	engine := process.NewEngine(splog)
	sess := session.New(ctx, repo, runner, engine, splog)
	sess.Remote = settings.Remote
	sess.MenuDefaults = settings.MenuDefaults
	attachReviews(ctx, sess, repo, settings.Remote)

	splog.Debug("repository %s, git %s, remote %s", root, settings.GitBinary, settings.Remote)

	return &Context{
		Repo:     repo,
		Engine:   engine,
		Session:  sess,
		Settings: settings,
		Splog:    splog,
		RepoRoot: root,
	}, nil
}

func newSplog(opts Options) (*output.Splog, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logFile := opts.LogFile
	switch logFile {
	case "-":
		logFile = ""
	case "":
		logFile = output.GetLogFilePath()
	}
	return output.NewSplogWithConfig(stdout, logFile, opts.Debug || os.Getenv("DEBUG") != "")
}

// attachReviews looks up open pull requests when the remote is on GitHub
// and a token is available. Without one, Dissolve simply skips the notice.
func attachReviews(ctx context.Context, sess *session.Session, repo *git.Repository, remote string) {
	remoteURL, err := repo.RemoteURL(remote)
	if err != nil {
		sess.Splog.Debug("review lookup disabled: %v", err)
		return
	}
	if _, err := github.ParseGitHubRemoteURL(remoteURL); err != nil {
		sess.Splog.Debug("review lookup disabled: %v", err)
		return
	}
	token, err := github.Token(ctx)
	if err != nil {
		sess.Splog.Debug("review lookup disabled: %v", err)
		return
	}
	finder, err := github.NewReviewFinder(ctx, remoteURL, token)
	if err != nil {
		sess.Splog.Debug("review lookup disabled: %v", err)
		return
	}
	sess.Reviews = finder
}
