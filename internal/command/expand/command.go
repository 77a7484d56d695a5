// Package expand 提供配置文件宏展开命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260825-go-pkg-macrox/internal/command"
)

// Command 配置展开命令
var Command = &cli.Command{
	Name:      "expand",
	Usage:     "展开 YAML/JSON 配置文件中的宏",
	ArgsUsage: "<config-file>",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "resolve-values",
			Aliases: []string{"f"},
			Value:   command.Defaults.Resolve.Values,
			Usage:   "值文件 (YAML/JSON)，可多次指定，按顺序优先",
		},
		&cli.BoolFlag{
			Name:  "resolve-no-env",
			Value: command.Defaults.Resolve.NoEnv,
			Usage: "不把进程环境变量作为仓库",
		},
		&cli.BoolFlag{
			Name:  "resolve-allow-undefined",
			Value: command.Defaults.Resolve.AllowUndefined,
			Usage: "容忍未定义的宏值",
		},
		&cli.StringSliceFlag{
			Name:  "resolve-exclude",
			Value: command.Defaults.Resolve.Exclude,
			Usage: "遍历时跳过的属性名，可多次指定",
		},
		&cli.StringFlag{
			Name:    "output-format",
			Aliases: []string{"o"},
			Value:   command.Defaults.Output.Format,
			Usage:   "输出格式 (yaml|json)",
		},
		&cli.StringFlag{
			Name:  "output-path",
			Value: command.Defaults.Output.Path,
			Usage: "输出文件路径，空为标准输出",
		},
		&cli.BoolFlag{
			Name:    "output-watch",
			Aliases: []string{"w"},
			Value:   command.Defaults.Output.Watch,
			Usage:   "监听输入与值文件变更并重新展开",
		},
		&cli.StringFlag{
			Name:  "symbols-begin",
			Value: command.Defaults.Symbols.Begin,
			Usage: "宏起始标记",
		},
		&cli.StringFlag{
			Name:  "symbols-end",
			Value: command.Defaults.Symbols.End,
			Usage: "宏结束标记",
		},
		&cli.StringFlag{
			Name:  "symbols-undefined-marker",
			Value: command.Defaults.Symbols.UndefinedMarker,
			Usage: "未定义值的字符串化标记",
		},
	},
}
