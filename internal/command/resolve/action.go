package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/260825-go-pkg-macrox/internal/command"
	"github.com/lwmacct/260825-go-pkg-macrox/internal/config"
	"github.com/lwmacct/260825-go-pkg-macrox/pkg/cfgm"
)

func action(_ context.Context, cmd *cli.Command) error {
	expression := cmd.Args().First()
	if expression == "" {
		return errors.New("missing expression argument")
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

	in, err := command.NewInterpolator(cfg)
	if err != nil {
		return err
	}

	result, err := in.Resolve(expression)
	if err != nil {
		return err
	}

	// 标量直接打印，结构化结果输出为 YAML
	switch result.(type) {
	case nil:
		fmt.Println(in.Symbols().UndefinedMarker)
	case map[string]any, []any:
		out, err := yamlv3.Marshal(result)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		fmt.Println(result)
	}

	return nil
}
