// Package macrox 提供配置数据的宏插值能力。
//
// 该包处理字符串（或嵌套的 map/slice 结构）中的 ${...} 宏表达式：
// 从有序的键值仓库中解析宏 key，经过可选的修饰符管道变换后，
// 将结果替换回原始结构。定位是配置占位符解析原语，
// 不是通用模板引擎（无循环/条件），也不是表达式语言。
//
// # 宏语法
//
//	${key}                     仓库查找（支持点号路径 a.b.c）
//	${'literal'}               字符串字面量（' " ` 三种引号）
//	${^0} / ${^-1}             属性路径回引（正向/负向索引）
//	${key | modifier}          修饰符管道
//	${key | default: 'x'}      带参数的修饰符
//	${${'a'}${'b'}}            嵌套宏构造 key
//	\${key}                    转义，保留字面文本
//
// # 语义说明
//
//  1. nil 即未定义：仓库返回 nil 视为未命中，继续查找下一个仓库
//  2. 宏恰好构成整个表达式时，保留解析值的原生类型（数字、map 等）
//  3. 宏嵌入更长文本时，结果一律字符串化，nil 渲染为未定义标记
//  4. 未终结的 ${... 片段原样保留，不报错
//
// # 快速开始
//
// 解析单个表达式：
//
//	in := macrox.MustNew(macrox.WithRepository(map[string]any{"host": "db01"}))
//	result, err := in.Resolve("addr=${host}:${port | default: '5432'}")
//
// 解析嵌套结构（就地替换字符串叶子）：
//
//	cfg := map[string]any{"url": "${scheme}://${host}"}
//	_, err := in.Resolve(cfg)
//
// 自定义修饰符（进程级注册，详见 [Registry]）：
//
//	macrox.RegisterModifier([]string{"trim", "-t"},
//	    func(in *macrox.Interpolator, v any, param *string) any {
//	        if s, ok := v.(string); ok { return strings.TrimSpace(s) }
//	        return v
//	    })
//
// # 并发模型
//
// 同一 [Interpolator] 实例同一时刻只能处理一个顶层 [Interpolator.Resolve]
// 调用（实例持有每次调用的扫描状态）。[Registry] 为进程级共享状态，
// 假定在启动阶段单写者注册，多线程场景需外部同步。
package macrox
