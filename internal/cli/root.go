package cli

import (
	"context"
	"fmt"
)

const helpText = `Available commands:
  list                                      list visible modules
  get <id>                                  show one module
  create <id> <name> <title> <description>  start a new module
  update <patch.json>                       apply a module patch
  delete <id>...                            delete modules
  swap <id> <id>                            swap the order of two modules
  progress <id> <lastStep> [completed]      record progress of the acting user
  import <archive.zip>...                   import module archives
  export <out.zip> <id>...                  export modules to an archive
  reset <id>...                             restore bundled defaults
  sync <id>                                 pull translations for a module
  help                                      show this text
`

// Run dispatches args[0] to its command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("%s", helpText)
		return usage("no command given")
	}

	cmd := args[0]
	args = args[1:]

	a.logger.Debug(ctx, "running command", "command", cmd, "args", len(args))

	switch cmd {
	case "help":
		a.printf("%s", helpText)
		return nil
	case "list", "l":
		return a.list(ctx)
	case "get":
		if len(args) != 1 {
			return usage("get <id>")
		}
		return a.get(ctx, args[0])
	case "create":
		if len(args) != 4 {
			return usage("create <id> <name> <title> <description>")
		}
		return a.create(ctx, args[0], args[1], args[2], args[3])
	case "update":
		if len(args) != 1 {
			return usage("update <patch.json>")
		}
		return a.update(ctx, args[0])
	case "delete":
		if len(args) == 0 {
			return usage("delete <id>...")
		}
		return a.delete(ctx, args)
	case "swap":
		if len(args) != 2 {
			return usage("swap <id> <id>")
		}
		return a.swap(ctx, args[0], args[1])
	case "progress":
		if len(args) != 2 && len(args) != 3 {
			return usage("progress <id> <lastStep> [completed]")
		}
		return a.progress(ctx, args[0], args[1], args[2:])
	case "import":
		if len(args) == 0 {
			return usage("import <archive.zip>...")
		}
		return a.importArchives(ctx, args)
	case "export":
		if len(args) < 2 {
			return usage("export <out.zip> <id>...")
		}
		return a.export(ctx, args[0], args[1:])
	case "reset":
		if len(args) == 0 {
			return usage("reset <id>...")
		}
		return a.reset(ctx, args)
	case "sync":
		if len(args) != 1 {
			return usage("sync <id>")
		}
		return a.sync(ctx, args[0])
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}
