package macrox

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Include 限定某个属性路径下仅处理指定属性。
type Include struct {
	Path     string // 从遍历根开始、点号连接的容器路径
	Property string // 该路径下唯一允许处理的属性名
}

// resolveOptions 树遍历的过滤选项。
type resolveOptions struct {
	exclude []string
	include []Include
}

// ResolveOption 单次 [Interpolator.Resolve] 调用的选项函数。
type ResolveOption func(*resolveOptions)

// WithExclude 在每一层跳过指定名称的属性。
func WithExclude(names ...string) ResolveOption {
	return func(o *resolveOptions) {
		o.exclude = append(o.exclude, names...)
	}
}

// WithInclude 在指定路径下仅处理指定属性。
//
// 同一路径可叠加多条；未被任何条目命中的路径正常处理。
func WithInclude(path, property string) ResolveOption {
	return func(o *resolveOptions) {
		o.include = append(o.include, Include{Path: path, Property: property})
	}
}

// excluded 判断属性名是否被排除。
func (o *resolveOptions) excluded(name string) bool {
	for _, ex := range o.exclude {
		if ex == name {
			return true
		}
	}

	return false
}

// allowedAt 返回指定容器路径下允许的属性集合；
// 无匹配条目时第二个返回值为 false，表示不受限。
func (o *resolveOptions) allowedAt(path string) (map[string]bool, bool) {
	var allowed map[string]bool
	for _, inc := range o.include {
		if inc.Path != path {
			continue
		}
		if allowed == nil {
			allowed = make(map[string]bool)
		}
		allowed[inc.Property] = true
	}

	return allowed, allowed != nil
}

// Resolve 解析表达式中的全部宏并返回同形结果。
//
// 字符串直接交给插值器；map/slice 结构递归遍历，字符串叶子就地替换
// 为插值结果。其它类型原样返回。不含宏起始标记的输入原样返回
// （结构输入返回同一引用）。
//
// 选项仅对结构输入有意义，输入为字符串时携带选项是用法错误。
// ThrowErrors 开启（默认）时，调用结束后若诊断列表非空，
// 聚合为一个错误返回（结果仍为尽力解析的值）。
func (in *Interpolator) Resolve(expression any, opts ...ResolveOption) (any, error) {
	ro := &resolveOptions{}
	for _, opt := range opts {
		opt(ro)
	}

	if in.ThrowErrors {
		in.Errors = nil
	}
	in.pathStack = in.pathStack[:0]
	in.expression, in.macro, in.oneMacro, in.constant = "", "", false, false

	var result any
	switch v := expression.(type) {
	case string:
		if len(opts) > 0 {
			return nil, fmt.Errorf("macrox: resolve options are not valid for a string expression")
		}
		result = in.interpolate(v)
	case map[string]any:
		in.visited = make(map[uintptr]struct{})
		in.walkMap(v, ro)
		in.visited = nil
		result = v
	case []any:
		in.visited = make(map[uintptr]struct{})
		in.walkSlice(v, ro)
		in.visited = nil
		result = v
	default:
		result = expression
	}

	if in.ThrowErrors && len(in.Errors) > 0 {
		return result, fmt.Errorf("macrox: resolve failed:\n%s", strings.Join(in.Errors, "\n"))
	}

	return result, nil
}

// seen 以身份标识记录容器是否已访问，防止环与共享引用重复遍历。
func (in *Interpolator) seen(container any) bool {
	ptr := reflect.ValueOf(container).Pointer()
	if ptr == 0 {
		return false
	}
	if _, ok := in.visited[ptr]; ok {
		return true
	}
	in.visited[ptr] = struct{}{}

	return false
}

// walkMap 遍历映射容器。
//
// 先把兄弟模板下沉到各兄弟条目，再按 key 升序逐条处理
// （固定顺序保证诊断输出可复现）。
func (in *Interpolator) walkMap(node map[string]any, ro *resolveOptions) {
	if in.seen(node) {
		return
	}

	if tpl, ok := node[in.syms.TemplateKey].(map[string]any); ok {
		for key, value := range node {
			if key == in.syms.TemplateKey || value == nil {
				// 显式置空的兄弟不接受模板
				continue
			}
			if sibling, ok := value.(map[string]any); ok && sibling != nil {
				applyTemplate(tpl, sibling)
			}
		}
	}

	keys := make([]string, 0, len(node))
	for key := range node {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	allowed, restricted := ro.allowedAt(strings.Join(in.pathStack, "."))
	for _, key := range keys {
		if ro.excluded(key) {
			continue
		}
		if restricted && !allowed[key] {
			continue
		}
		in.walkEntry(node[key], key, ro, func(v any) { node[key] = v })
	}
}

// walkSlice 遍历序列容器，元素索引作为属性路径片段。
func (in *Interpolator) walkSlice(node []any, ro *resolveOptions) {
	if in.seen(node) {
		return
	}

	for i := range node {
		idx := i
		in.walkEntry(node[idx], strconv.Itoa(idx), ro, func(v any) { node[idx] = v })
	}
}

// walkEntry 处理单个容器条目：含宏的字符串就地替换为插值结果，
// 结构值递归下钻；条目 key 在处理期间压入属性路径栈。
func (in *Interpolator) walkEntry(value any, key string, ro *resolveOptions, set func(any)) {
	in.pathStack = append(in.pathStack, key)
	defer func() {
		in.pathStack = in.pathStack[:len(in.pathStack)-1]
	}()

	switch v := value.(type) {
	case string:
		if !strings.Contains(v, in.syms.MacroBegin) {
			return
		}
		result := in.interpolate(v)
		set(result)
		// 插值结果本身是结构时继续遍历
		switch r := result.(type) {
		case map[string]any:
			in.walkMap(r, ro)
		case []any:
			in.walkSlice(r, ro)
		}
	case map[string]any:
		in.walkMap(v, ro)
	case []any:
		in.walkSlice(v, ro)
	}
}

// applyTemplate 将模板属性下沉到单个兄弟条目。
//
// 模板 key 在兄弟中缺失（或为 nil）时深拷贝写入；两边同为映射时
// 递归合并。已存在的叶子值永不覆盖。
func applyTemplate(tpl, sibling map[string]any) {
	for key, tv := range tpl {
		sv, ok := sibling[key]
		if !ok || sv == nil {
			sibling[key] = deepCopy(tv)

			continue
		}
		if tvm, ok := tv.(map[string]any); ok {
			if svm, ok := sv.(map[string]any); ok {
				applyTemplate(tvm, svm)
			}
		}
	}
}

// deepCopy 递归拷贝 map/slice，标量原样返回。
func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = deepCopy(e)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = deepCopy(e)
		}

		return out
	default:
		return value
	}
}
