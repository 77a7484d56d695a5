package expand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/260825-go-pkg-macrox/internal/command"
	"github.com/lwmacct/260825-go-pkg-macrox/internal/config"
	"github.com/lwmacct/260825-go-pkg-macrox/pkg/cfgm"
	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

func action(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return errors.New("missing config file argument")
	}

	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.Load(config.DefaultConfig(),
		cfgm.WithAppName(command.AppName),
		cfgm.WithEnvPrefix("MACROX_"),
		cfgm.WithCommand(cmd),
	)
	if err != nil {
		return err
	}

	if err := expandOnce(cfg, input); err != nil {
		return err
	}
	if !cfg.Output.Watch {
		return nil
	}

	return watch(ctx, cfg, input)
}

// expandOnce 展开一次输入文件并写出结果。
//
// 仓库顺序：值文件 → 进程环境变量 → 文档自身
// （文档可经点号路径自引用）。
func expandOnce(cfg *config.Config, input string) error {
	doc, err := cfgm.ParseFile(input)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", input, err)
	}

	in, err := command.NewInterpolator(cfg)
	if err != nil {
		return err
	}
	if err := in.RegisterRepository(doc); err != nil {
		return err
	}

	var opts []macrox.ResolveOption
	if len(cfg.Resolve.Exclude) > 0 {
		opts = append(opts, macrox.WithExclude(cfg.Resolve.Exclude...))
	}
	if _, err := in.Resolve(doc, opts...); err != nil {
		return err
	}

	out, err := marshalDoc(doc, cfg.Output.Format)
	if err != nil {
		return err
	}

	if cfg.Output.Path == "" {
		fmt.Print(string(out))

		return nil
	}
	if err := os.WriteFile(cfg.Output.Path, out, 0o600); err != nil {
		return fmt.Errorf("write output %s: %w", cfg.Output.Path, err)
	}
	slog.Info("Expanded config written", "input", input, "output", cfg.Output.Path)

	return nil
}

// marshalDoc 按输出格式序列化展开后的文档。
func marshalDoc(doc map[string]any, format string) ([]byte, error) {
	switch format {
	case "", "yaml", "yml":
		return yamlv3.Marshal(doc)
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}

		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// watch 监听输入文件与值文件，变更时重新展开。
//
// 展开失败只记录日志不退出，等待下一次变更；ctx 取消时返回。
func watch(ctx context.Context, cfg *config.Config, input string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(input); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	for _, path := range cfg.Resolve.Values {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}

	slog.Info("Watching for changes", "input", input, "values", cfg.Resolve.Values)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Info("Change detected", "file", event.Name)
			if err := expandOnce(cfg, input); err != nil {
				slog.Error("Expand failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}
