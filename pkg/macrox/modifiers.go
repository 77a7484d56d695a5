package macrox

import (
	"fmt"
	"strconv"
	"strings"
)

// registerBuiltins 注册全部内置修饰符，每个都有长短两个别名。
func registerBuiltins(r *Registry) {
	mustRegister := func(aliases []string, fn ModifierFunc) {
		if err := r.Register(aliases, fn); err != nil {
			panic(err)
		}
	}

	mustRegister([]string{"mandatory", "-m"}, modMandatory)
	mustRegister([]string{"default", "-d"}, modDefault)
	mustRegister([]string{"upper", "-u"}, modUpper)
	mustRegister([]string{"lower", "-l"}, modLower)
	mustRegister([]string{"emptyArray", "-ea"}, modEmptyArray)
	mustRegister([]string{"toNumber", "toNum", "-tn"}, modToNumber)
	mustRegister([]string{"toBoolean", "toBool", "-tb"}, modToBoolean)
}

// modMandatory 当前值未定义时记录错误，已定义值原样通过。
func modMandatory(in *Interpolator, value any, _ *string) any {
	if value == nil {
		in.AddError("mandatory value not defined")
	}

	return value
}

// modDefault 将参数作为宏 key 解析（字面量、路径回引或仓库 key），
// 当前值未定义时以解析结果替换。
//
// 参数解析始终执行，以保证常量链诊断等副作用一致；
// 仅在当前值未定义且参数也解析失败时记录错误。
func modDefault(in *Interpolator, value any, param *string) any {
	var resolved any
	if param != nil {
		resolved = in.GetValue(*param)
	}
	if value != nil {
		return value
	}
	if resolved == nil {
		key := ""
		if param != nil {
			key = *param
		}
		in.AddError("undefined default value", "'"+key+"'")

		return value
	}

	return resolved
}

// modUpper 文本值转大写，其它类型原样通过。
func modUpper(_ *Interpolator, value any, _ *string) any {
	if s, ok := value.(string); ok {
		return strings.ToUpper(s)
	}

	return value
}

// modLower 文本值转小写，其它类型原样通过。
func modLower(_ *Interpolator, value any, _ *string) any {
	if s, ok := value.(string); ok {
		return strings.ToLower(s)
	}

	return value
}

// modEmptyArray 将已定义值包装为单元素序列，未定义值产出空序列。
//
// 仅当宏恰好构成整个表达式时有效；宏嵌入更长文本时记录错误，
// 值原样通过。
func modEmptyArray(in *Interpolator, value any, _ *string) any {
	if !in.IsOneMacro() {
		in.AddError("emptyArray requires the macro to be the entire expression")

		return value
	}
	if value == nil {
		return []any{}
	}

	return []any{value}
}

// modToNumber 将当前值转换为数值。
//
// 转换失败时尝试以参数（同样按数值解析）作为回退；
// 两者都失败则记录错误并产出 0。
func modToNumber(in *Interpolator, value any, param *string) any {
	if n, ok := toFloat(value); ok {
		return n
	}
	if param != nil {
		if n, ok := toFloat(*param); ok {
			return n
		}
	}
	in.AddError("cannot convert value to number", fmt.Sprintf("%v", value))

	return float64(0)
}

// toFloat 尝试把任意值转换为 float64。
func toFloat(value any) (float64, bool) {
	switch t := value.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}

// modToBoolean 按约定真值规则转换为布尔值。
//
// 文本 "false"（不区分大小写）、"0" 与空串产出 false，
// 其它非空文本产出 true；非文本值按常规真值判定。
func modToBoolean(_ *Interpolator, value any, _ *string) any {
	switch t := value.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		if t == "" {
			return false
		}
		if strings.EqualFold(t, "false") || t == "0" {
			return false
		}

		return true
	default:
		if n, ok := toFloat(value); ok {
			return n != 0
		}

		return true
	}
}
