// Package command 提供宏解析与配置展开的命令行功能。
package command

import (
	"fmt"

	"github.com/lwmacct/260825-go-pkg-macrox/internal/config"
	"github.com/lwmacct/260825-go-pkg-macrox/pkg/cfgm"
	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

// AppName 应用名称，用于默认配置路径与环境变量前缀。
const AppName = "macrox"

// Version 应用版本。
const Version = "0.1.0"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// NewInterpolator 按应用配置构造插值器。
//
// 仓库顺序：extra 仓库 → 各值文件（按声明顺序）→ 进程环境变量
// （除非 resolve.no-env）。值文件解析失败立即报错。
func NewInterpolator(cfg *config.Config, extra ...any) (*macrox.Interpolator, error) {
	repos := append([]any{}, extra...)
	for _, path := range cfg.Resolve.Values {
		values, err := cfgm.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("load values file %s: %w", path, err)
		}
		repos = append(repos, values)
	}
	if !cfg.Resolve.NoEnv {
		repos = append(repos, cfgm.EnvRepository())
	}

	return macrox.New(
		macrox.WithSymbols(macrox.Symbols{
			MacroBegin:      cfg.Symbols.Begin,
			MacroEnd:        cfg.Symbols.End,
			UndefinedMarker: cfg.Symbols.UndefinedMarker,
		}),
		macrox.WithAllowUndefined(cfg.Resolve.AllowUndefined),
		macrox.WithRepository(repos...),
	)
}
