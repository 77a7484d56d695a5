package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

// options 配置加载选项。
type options struct {
	appName          string // 应用名称，用于生成默认配置路径
	cmd              *cli.Command
	configPaths      []string
	envPrefix        string
	noMacroExpansion bool           // 是否禁用宏解析（默认启用）
	macroRepos       []any          // 宏解析的额外仓库，优先于环境变量与配置树
	macroSymbols     macrox.Symbols // 宏分隔符覆盖
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		o.configPaths = paths
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 注意：通过反射自动生成配置 key 的绑定，只匹配结构体中定义的 key。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithMacroRepository 追加宏解析仓库，优先于环境变量与配置树自身。
//
// 仓库形态见 macrox.Interpolator 的 RegisterRepository 文档。
func WithMacroRepository(repos ...any) Option {
	return func(o *options) {
		o.macroRepos = append(o.macroRepos, repos...)
	}
}

// WithMacroSymbols 覆盖宏分隔符集合（零值字段沿用默认）。
func WithMacroSymbols(symbols macrox.Symbols) Option {
	return func(o *options) {
		o.macroSymbols = symbols
	}
}

// WithoutMacroExpansion 禁用配置树的宏解析。
//
// 默认会对合并后的配置树执行 ${...} 宏解析，
// 该选项会保留原始字符串。
func WithoutMacroExpansion() Option {
	return func(o *options) {
		o.noMacroExpansion = true
	}
}
