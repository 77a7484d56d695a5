// Package resolve 提供单表达式宏解析命令。
package resolve

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260825-go-pkg-macrox/internal/command"
)

// Command 表达式解析命令
var Command = &cli.Command{
	Name:      "resolve",
	Usage:     "解析单个宏表达式",
	ArgsUsage: "<expression>",
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
