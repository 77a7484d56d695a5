// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - 通过 WithAppName / WithConfigPaths 选项设置
//  3. 环境变量 - 通过 WithEnvPrefix 选项启用
//  4. CLI flags - 通过 WithCommand 选项设置
package config

// Config 应用配置。
type Config struct {
	Resolve ResolveConfig `json:"resolve" desc:"宏解析配置"`
	Output  OutputConfig  `json:"output" desc:"输出配置"`
	Symbols SymbolsConfig `json:"symbols" desc:"宏分隔符覆盖"`
}

// ResolveConfig 宏解析配置。
type ResolveConfig struct {
	Values         []string `json:"values" desc:"值文件列表 (YAML/JSON)，按顺序优先"`
	NoEnv          bool     `json:"no-env" desc:"不把进程环境变量作为仓库"`
	AllowUndefined bool     `json:"allow-undefined" desc:"容忍未定义的宏值"`
	Exclude        []string `json:"exclude" desc:"遍历时跳过的属性名"`
}

// OutputConfig 输出配置。
type OutputConfig struct {
	Format string `json:"format" desc:"输出格式 (yaml|json)"`
	Path   string `json:"path" desc:"输出文件路径，空为标准输出"`
	Watch  bool   `json:"watch" desc:"监听输入文件变更并重新展开"`
}

// SymbolsConfig 宏分隔符覆盖，空字段沿用 macrox 默认值。
type SymbolsConfig struct {
	Begin           string `json:"begin" desc:"宏起始标记"`
	End             string `json:"end" desc:"宏结束标记"`
	UndefinedMarker string `json:"undefined-marker" desc:"未定义值的字符串化标记"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Resolve: ResolveConfig{
			AllowUndefined: true,
		},
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}
