package macrox

import (
	"fmt"
	"strconv"
	"strings"
)

// Lookup 回调型仓库：返回 key 对应的值，nil 表示未命中。
type Lookup func(key string, in *Interpolator) any

// quoteChars 识别为字符串字面量定界符的三种引号。
const quoteChars = "'\"`"

// RegisterRepository 追加一个或多个仓库到实例的有序列表末尾。
//
// 支持的仓库形态：
//   - map[string]any：键值映射，子映射可经点号路径访问
//   - map[string]string：便捷形态，注册时转换为 map[string]any
//   - [Lookup] 或同签名函数：回调仓库
//
// 注册顺序即查找优先级，先注册者先命中。不支持的类型立即报错。
func (in *Interpolator) RegisterRepository(repos ...any) error {
	for _, repo := range repos {
		switch r := repo.(type) {
		case map[string]any:
			in.repos = append(in.repos, r)
		case map[string]string:
			m := make(map[string]any, len(r))
			for k, v := range r {
				m[k] = v
			}
			in.repos = append(in.repos, m)
		case Lookup:
			in.repos = append(in.repos, r)
		case func(key string, in *Interpolator) any:
			in.repos = append(in.repos, Lookup(r))
		default:
			return fmt.Errorf("macrox: unsupported repository type %T", repo)
		}
	}

	return nil
}

// GetValue 按宏 key 解析值，可供自定义修饰符调用。
//
// 解析顺序：
//  1. 非文本 key 原样返回（已是解析结果）
//  2. 引号字面量：剥离定界符返回内容，标记常量已产出
//  3. 属性路径回引：索引属性路径栈（支持负向索引）
//  4. 仓库查找：按注册顺序取首个命中（非 nil）的值
//
// 同一宏链中常量产出后再次解析 key 会记录
// "unused value after constant" 诊断，但不中断处理。
// 任何仓库都未命中时返回 nil（未定义本身不是错误）。
func (in *Interpolator) GetValue(key any) any {
	text, ok := key.(string)
	if !ok {
		return key
	}

	if in.constant {
		in.AddError("unused value after constant", "'"+text+"'")
	}

	if inner, ok := quotedLiteral(text); ok {
		in.constant = true

		return inner
	}

	if strings.HasPrefix(text, in.syms.PathIndicator) {
		in.constant = true

		return in.pathReference(text)
	}

	segments := strings.Split(text, ".")
	for _, repo := range in.repos {
		switch r := repo.(type) {
		case Lookup:
			if v := r(text, in); v != nil {
				return v
			}
		case map[string]any:
			if v := lookupPath(r, segments); v != nil {
				return v
			}
		}
	}

	return nil
}

// quotedLiteral 判断 key 是否为首尾同引号包裹的字面量。
func quotedLiteral(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if !strings.ContainsRune(quoteChars, rune(q)) {
		return "", false
	}
	if s[len(s)-1] != q {
		return "", false
	}

	return s[1 : len(s)-1], true
}

// pathReference 解析属性路径回引（指示符 + 整数索引）。
//
// 正数从栈底起 0 基索引，负数从栈顶向回数（-1 为当前叶子）。
// 非数字或越界索引记录诊断并返回 nil。
func (in *Interpolator) pathReference(key string) any {
	raw := strings.TrimSpace(strings.TrimPrefix(key, in.syms.PathIndicator))
	n, err := strconv.Atoi(raw)
	if err != nil {
		in.AddError("invalid property path reference", "'"+key+"'")

		return nil
	}

	idx := n
	if n < 0 {
		idx = len(in.pathStack) + n
	}
	if idx < 0 || idx >= len(in.pathStack) {
		in.AddError("invalid property path index", "'"+key+"'")

		return nil
	}

	return in.pathStack[idx]
}

// lookupPath 在嵌套映射中按路径片段逐段下钻。
//
// 单片段直接查找；多片段时任一中间片段缺失即视为未命中。
func lookupPath(m map[string]any, segments []string) any {
	if len(segments) == 1 {
		return m[segments[0]]
	}

	var cur any = m
	for _, seg := range segments {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = mm[seg]
		if !ok {
			return nil
		}
	}

	return cur
}
