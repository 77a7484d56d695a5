package macrox

import (
	"fmt"
	"strings"
)

// escapeChar 转义字符：其后一个字符按字面处理，宏内外均生效。
const escapeChar = '\\'

// Interpolator 宏插值器实例。
//
// 持有有序仓库列表、生效的分隔符集合与两个策略开关；
// 扫描期间的瞬态状态（原始表达式、活动宏、属性路径栈等）
// 也记录在实例上，因此同一实例同一时刻只能处理一个顶层
// [Interpolator.Resolve] 调用。
type Interpolator struct {
	repos    []any
	syms     Symbols
	registry *Registry

	// ThrowErrors 为 true（默认）时，每次 Resolve 开始前清空 Errors，
	// 结束时若有诊断则聚合为一个错误返回；为 false 时诊断跨调用累积，
	// 由调用方自行检查与清理。
	ThrowErrors bool

	// AllowUndefined 为 false 时，最终值为未定义的宏会记录诊断。
	AllowUndefined bool

	// Errors 累积的诊断列表。
	Errors []string

	// 每次顶层 Resolve 的瞬态扫描状态。
	expression string   // 当前处理的原始表达式，用于诊断
	macro      string   // 当前活动的单个宏文本
	oneMacro   bool     // 当前宏是否恰好构成整个原始表达式
	constant   bool     // 当前宏链中是否已产出字面常量
	pathStack  []string // 遍历根到当前叶子的属性路径栈
	visited    map[uintptr]struct{}
}

// Option 实例构造选项函数。
type Option func(*Interpolator) error

// WithRepository 追加一个或多个仓库（见 [Interpolator.RegisterRepository]）。
func WithRepository(repos ...any) Option {
	return func(in *Interpolator) error {
		return in.RegisterRepository(repos...)
	}
}

// WithSymbols 以部分覆盖的方式定制分隔符集合。
//
// 零值字段沿用 [DefaultSymbols] 的对应字段。
func WithSymbols(override Symbols) Option {
	return func(in *Interpolator) error {
		in.syms = override.merge(in.syms)

		return nil
	}
}

// WithRegistry 注入独立的修饰符登记表，默认共用 [DefaultRegistry]。
func WithRegistry(r *Registry) Option {
	return func(in *Interpolator) error {
		if r == nil {
			return fmt.Errorf("macrox: registry is nil")
		}
		in.registry = r

		return nil
	}
}

// WithThrowErrors 设置诊断聚合抛出开关（默认 true）。
func WithThrowErrors(enabled bool) Option {
	return func(in *Interpolator) error {
		in.ThrowErrors = enabled

		return nil
	}
}

// WithAllowUndefined 设置是否容忍未定义值（默认 true）。
func WithAllowUndefined(enabled bool) Option {
	return func(in *Interpolator) error {
		in.AllowUndefined = enabled

		return nil
	}
}

// New 构造插值器实例。
//
// 分隔符集合从 [DefaultSymbols] 拷贝，之后对默认值的修改不影响
// 已构造实例。
func New(opts ...Option) (*Interpolator, error) {
	in := &Interpolator{
		syms:           DefaultSymbols,
		registry:       DefaultRegistry,
		ThrowErrors:    true,
		AllowUndefined: true,
	}
	for _, opt := range opts {
		if err := opt(in); err != nil {
			return nil, err
		}
	}

	return in, nil
}

// MustNew 调用 [New] 并在失败时 panic，适合启动阶段。
func MustNew(opts ...Option) *Interpolator {
	in, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return in
}

// Symbols 返回实例生效的分隔符集合。
func (in *Interpolator) Symbols() Symbols {
	return in.syms
}

// IsOneMacro 报告当前宏是否恰好构成整个原始表达式。
//
// 仅在活动 Resolve 期间的修饰符回调中有意义。
func (in *Interpolator) IsOneMacro() bool {
	return in.oneMacro
}

// ═══════════════════════════════════════════════════════════════════════════
// 表达式扫描
// ═══════════════════════════════════════════════════════════════════════════

// frame 单个在制宏的扫描上下文。
type frame struct {
	start  int      // 宏起始标记在当前文本中的位置
	key    string   // 已累积的 key 文本
	mods   []string // 已累积的修饰符段（原始文本，消费时再去转义）
	inMods bool     // 是否已越过首个修饰符分隔符
}

// interpolate 对单个字符串执行宏展开。
//
// 返回 string；仅当宏恰好构成整个表达式时返回解析值的原生类型。
func (in *Interpolator) interpolate(expr string) any {
	if !strings.Contains(expr, in.syms.MacroBegin) && !strings.ContainsRune(expr, escapeChar) {
		return expr
	}

	savedExpr, savedMacro := in.expression, in.macro
	in.expression, in.macro = expr, ""
	defer func() {
		in.expression, in.macro = savedExpr, savedMacro
	}()

	return in.scan(expr)
}

// scan 单趟从左到右扫描，用显式栈维护嵌套宏上下文。
//
// 宏结束时将结果拼接回文本原处：若替换文本含宏起始标记则从替换点
// 重新扫描（支持结果本身仍是宏语法），否则跳过替换文本继续，
// 其内容整体并入外层宏的当前缓冲。扫描结束仍在宏内时（未终结），
// 残余片段按字面保留。
func (in *Interpolator) scan(text string) any {
	syms := &in.syms
	var stack []*frame
	var cur *frame
	i := 0

	appendBody := func(f *frame, s string) {
		if f.inMods {
			f.mods[len(f.mods)-1] += s
		} else {
			f.key += s
		}
	}

	for i < len(text) {
		if text[i] == escapeChar {
			if cur == nil {
				// 宏外：丢弃转义符，下一字符按字面保留
				text = text[:i] + text[i+1:]
				i++

				continue
			}
			// 宏内：转义符连同下一字符进入缓冲，消费时再去转义
			end := min(i+2, len(text))
			appendBody(cur, text[i:end])
			i = end

			continue
		}

		if strings.HasPrefix(text[i:], syms.MacroBegin) {
			stack = append(stack, cur)
			cur = &frame{start: i}
			i += len(syms.MacroBegin)

			continue
		}

		if cur == nil {
			i++

			continue
		}

		if strings.HasPrefix(text[i:], syms.MacroEnd) {
			endPos := i + len(syms.MacroEnd)
			macroText := text[cur.start:endPos]
			val := in.evalMacro(macroText, cur)

			childStart := cur.start
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if in.oneMacro && cur == nil {
				return val
			}

			repl := in.stringify(val)
			text = text[:childStart] + repl + text[endPos:]
			if strings.Contains(repl, syms.MacroBegin) {
				// 替换文本仍含宏语法，从替换点重新扫描
				i = childStart
			} else {
				i = childStart + len(repl)
				if cur != nil {
					appendBody(cur, repl)
				}
			}

			continue
		}

		if strings.HasPrefix(text[i:], syms.ModifierSeparator) {
			cur.inMods = true
			cur.mods = append(cur.mods, "")
			i += len(syms.ModifierSeparator)

			continue
		}

		appendBody(cur, text[i:i+1])
		i++
	}

	return text
}

// evalMacro 解析单个宏：key 解析、修饰符管道与未定义策略检查。
func (in *Interpolator) evalMacro(macroText string, f *frame) any {
	in.macro = macroText
	in.oneMacro = macroText == in.expression
	in.constant = false

	key := unescape(strings.TrimSpace(f.key))
	value := in.GetValue(key)

	for _, seg := range f.mods {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			// 尾随空段忽略
			continue
		}

		name := seg
		var param *string
		if idx := strings.Index(seg, in.syms.ParameterSeparator); idx >= 0 {
			name = seg[:idx]
			p := unescape(strings.TrimSpace(seg[idx+len(in.syms.ParameterSeparator):]))
			param = &p
		}
		name = strings.ToLower(strings.TrimSpace(name))

		fn, ok := in.registry.lookup(name)
		if !ok {
			in.AddError("unknown modifier", "'"+name+"'")

			continue
		}
		value = fn(in, value, param)
	}

	if value == nil && !in.AllowUndefined {
		in.AddError("undefined value", "'"+key+"'")
	}

	return value
}

// stringify 将解析值转换为可拼接回文本的字符串。
func (in *Interpolator) stringify(value any) string {
	switch t := value.(type) {
	case nil:
		return in.syms.UndefinedMarker
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// unescape 移除转义字符，其后字符按字面保留；结尾孤立转义符丢弃。
func unescape(s string) string {
	if !strings.ContainsRune(s, escapeChar) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChar {
			if i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			}

			continue
		}
		b.WriteByte(s[i])
	}

	return b.String()
}
