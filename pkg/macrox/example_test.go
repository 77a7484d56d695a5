package macrox_test

import (
	"fmt"

	"github.com/lwmacct/260825-go-pkg-macrox/pkg/macrox"
)

// Example_basic 演示基础的宏展开。
func Example_basic() {
	in := macrox.MustNew(macrox.WithRepository(map[string]any{"host": "db01"}))

	result, _ := in.Resolve("addr=${host}:${PGPORT | default: '5432'}")
	fmt.Println(result)

	// Output:
	// addr=db01:5432
}

// Example_nativeType 演示整表达式宏保留原生类型。
func Example_nativeType() {
	in := macrox.MustNew(macrox.WithRepository(map[string]any{"port": 8080}))

	result, _ := in.Resolve("${port}")
	fmt.Printf("%T %v\n", result, result)

	// Output:
	// int 8080
}

// Example_tree 演示嵌套结构的就地解析与点号路径查找。
func Example_tree() {
	in := macrox.MustNew(macrox.WithRepository(map[string]any{
		"server": map[string]any{"host": "db01", "port": 5432},
	}))

	cfg := map[string]any{
		"url": "postgres://${server.host}:${server.port}/app",
	}
	_, _ = in.Resolve(cfg)
	fmt.Println(cfg["url"])

	// Output:
	// postgres://db01:5432/app
}

// Example_siblingTemplate 演示兄弟模板继承。
func Example_siblingTemplate() {
	in := macrox.MustNew()

	services := map[string]any{
		"$template": map[string]any{"port": 1234},
		"alpha":     map[string]any{},
		"beta":      map[string]any{"port": 4321},
	}
	_, _ = in.Resolve(map[string]any{"services": services})

	fmt.Println("alpha:", services["alpha"].(map[string]any)["port"])
	fmt.Println("beta:", services["beta"].(map[string]any)["port"])

	// Output:
	// alpha: 1234
	// beta: 4321
}

// Example_customModifier 演示注册自定义修饰符。
func Example_customModifier() {
	registry := macrox.NewRegistry()
	_ = registry.Register([]string{"wrap"}, func(in *macrox.Interpolator, value any, param *string) any {
		mark := any("*")
		if param != nil {
			// 参数本身是宏 key，交回解析例程（剥离引号字面量）
			mark = in.GetValue(*param)
		}
		return fmt.Sprintf("%v%v%v", mark, value, mark)
	})

	in := macrox.MustNew(
		macrox.WithRepository(map[string]any{"name": "web"}),
		macrox.WithRegistry(registry),
	)
	result, _ := in.Resolve("${name | wrap: '#'}")
	fmt.Println(result)

	// Output:
	// #web#
}
