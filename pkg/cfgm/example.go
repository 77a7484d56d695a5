package cfgm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ExampleYAML 根据配置结构体生成带注释的 YAML 示例。
//
// 字段注释取自 desc 标签，嵌套结构体以段落形式输出。
// 适合生成 config.yaml 的初始模板。
func ExampleYAML(cfg any) []byte {
	var buf bytes.Buffer
	buf.WriteString("# 配置示例文件, 复制此文件为 config.yaml 并根据需要修改\n")
	writeExampleYAML(&buf, reflect.ValueOf(cfg), 0)

	return buf.Bytes()
}

// MarshalJSON 将配置结构体序列化为缩进的 JSON。
func MarshalJSON(cfg any) []byte {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil
	}

	return out
}

func writeExampleYAML(buf *bytes.Buffer, val reflect.Value, depth int) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	indent := strings.Repeat("  ", depth)
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}
		desc := field.Tag.Get("desc")

		if isStructType(field.Type) {
			buf.WriteString("\n")
			if desc != "" {
				fmt.Fprintf(buf, "%s# %s\n", indent, desc)
			}
			fmt.Fprintf(buf, "%s%s:\n", indent, key)
			writeExampleYAML(buf, val.Field(i), depth+1)

			continue
		}

		fmt.Fprintf(buf, "%s%s: %s", indent, key, exampleYAMLValue(val.Field(i)))
		if desc != "" {
			fmt.Fprintf(buf, " # %s", desc)
		}
		buf.WriteString("\n")
	}
}

// exampleYAMLValue 渲染单个标量值：字符串加单引号，时长用可读格式。
func exampleYAMLValue(val reflect.Value) string {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return "null"
		}
		val = val.Elem()
	}

	if val.Type() == durationType {
		return time.Duration(val.Int()).String()
	}

	switch val.Kind() {
	case reflect.String:
		return "'" + val.String() + "'"
	case reflect.Slice, reflect.Map:
		empty := "[]"
		if val.Kind() == reflect.Map {
			empty = "{}"
		}
		if val.IsNil() || val.Len() == 0 {
			return empty
		}

		out, err := json.Marshal(val.Interface())
		if err != nil {
			return empty
		}

		return string(out)
	default:
		return fmt.Sprintf("%v", val.Interface())
	}
}
