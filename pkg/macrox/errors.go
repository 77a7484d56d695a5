package macrox

import (
	"fmt"
	"slices"
	"strings"
)

// errorJoin 诊断片段的连接符。
const errorJoin = " <== "

// AddError 追加一条格式化诊断到累积列表。
//
// 各片段以 " <== " 连接，并自动附加当前活动宏、完整原始表达式
// （二者可用时）与非空的属性路径；完全相同的诊断去重。
func (in *Interpolator) AddError(parts ...any) {
	segs := make([]string, 0, len(parts)+3)
	for _, p := range parts {
		segs = append(segs, fmt.Sprintf("%v", p))
	}
	if in.macro != "" {
		segs = append(segs, in.macro)
	}
	if in.expression != "" && in.expression != in.macro {
		segs = append(segs, in.expression)
	}
	if len(in.pathStack) > 0 {
		segs = append(segs, "path: "+strings.Join(in.pathStack, "."))
	}

	msg := strings.Join(segs, errorJoin)
	if slices.Contains(in.Errors, msg) {
		return
	}
	in.Errors = append(in.Errors, msg)
}

// ClearErrors 清空累积的诊断列表。
//
// ThrowErrors 关闭时诊断跨调用累积，由调用方按需清理。
func (in *Interpolator) ClearErrors() {
	in.Errors = nil
}

// String 渲染实例状态用于诊断输出。
func (in *Interpolator) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "macrox.Interpolator{expression: %q, macro: %q", in.expression, in.macro)
	if len(in.pathStack) > 0 {
		fmt.Fprintf(&b, ", path: %s", strings.Join(in.pathStack, "."))
	}
	if len(in.Errors) > 0 {
		b.WriteString(", errors:")
		for _, e := range in.Errors {
			b.WriteString("\n  " + e)
		}
	}
	b.WriteString("}")

	return b.String()
}
