package macrox

// Symbols 定义识别宏语法所用的字面分隔符集合。
//
// 实例构造后不可变；[DefaultSymbols] 为进程级默认值，
// 修改只影响之后创建的实例。
type Symbols struct {
	MacroBegin         string // 宏起始标记
	MacroEnd           string // 宏结束标记
	ModifierSeparator  string // 修饰符分隔符
	ParameterSeparator string // 修饰符参数分隔符
	PathIndicator      string // 属性路径回引前缀
	TemplateKey        string // 兄弟模板属性名
	UndefinedMarker    string // 未定义值的字符串化标记
}

// DefaultSymbols 为进程级默认分隔符集合。
//
// 可整体替换或逐字段修改，变更仅对之后构造的实例生效。
var DefaultSymbols = Symbols{
	MacroBegin:         "${",
	MacroEnd:           "}",
	ModifierSeparator:  "|",
	ParameterSeparator: ":",
	PathIndicator:      "^",
	TemplateKey:        "$template",
	UndefinedMarker:    "undefined",
}

// merge 将非空字段覆盖到 base 上，返回生效的分隔符集合。
//
// 空字符串表示沿用 base 对应字段；覆盖值必须非空，
// 因此无法通过覆盖将某个分隔符置空。
func (s Symbols) merge(base Symbols) Symbols {
	if s.MacroBegin != "" {
		base.MacroBegin = s.MacroBegin
	}
	if s.MacroEnd != "" {
		base.MacroEnd = s.MacroEnd
	}
	if s.ModifierSeparator != "" {
		base.ModifierSeparator = s.ModifierSeparator
	}
	if s.ParameterSeparator != "" {
		base.ParameterSeparator = s.ParameterSeparator
	}
	if s.PathIndicator != "" {
		base.PathIndicator = s.PathIndicator
	}
	if s.TemplateKey != "" {
		base.TemplateKey = s.TemplateKey
	}
	if s.UndefinedMarker != "" {
		base.UndefinedMarker = s.UndefinedMarker
	}

	return base
}
