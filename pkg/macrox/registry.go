package macrox

import (
	"fmt"
	"strings"
)

// ModifierFunc 修饰符回调。
//
// value 为管道中当前值（nil 表示未定义），param 为修饰符参数
// （无参数时为 nil）。返回值作为管道的新当前值继续传递。
// 回调内可通过 in 访问 [Interpolator.GetValue]、[Interpolator.IsOneMacro]
// 与 [Interpolator.AddError]。
type ModifierFunc func(in *Interpolator, value any, param *string) any

// Registry 维护修饰符名称到回调的映射。
//
// 名称匹配不区分大小写。注册/注销未做内部加锁，
// 假定在启动阶段单写者完成注册（见包文档的并发模型）。
type Registry struct {
	mods map[string]ModifierFunc
}

// NewRegistry 返回预注册了全部内置修饰符的新登记表。
//
// 用于测试隔离或需要独立修饰符集合的场景，
// 配合 [WithRegistry] 注入实例。
func NewRegistry() *Registry {
	r := &Registry{mods: make(map[string]ModifierFunc)}
	registerBuiltins(r)

	return r
}

// DefaultRegistry 为进程级共享登记表，所有未显式注入登记表的
// 实例共用它。
var DefaultRegistry = NewRegistry()

// Register 将回调注册到所有给定别名（统一转为小写）。
//
// 回调为 nil 或任一别名已存在时返回错误；错误信息包含冲突的
// 别名与本次注册的完整别名组。注册逐别名进行，失败时在冲突别名
// 之前的别名已生效（部分注册）。
func (r *Registry) Register(aliases []string, fn ModifierFunc) error {
	if fn == nil {
		return fmt.Errorf("macrox: modifier callback for %v is nil", aliases)
	}
	if len(aliases) == 0 {
		return fmt.Errorf("macrox: modifier registration requires at least one alias")
	}

	for _, alias := range aliases {
		name := strings.ToLower(alias)
		if _, exists := r.mods[name]; exists {
			return fmt.Errorf("macrox: modifier %q already registered (registering %v)", name, aliases)
		}
		r.mods[name] = fn
	}

	return nil
}

// Unregister 按别名注销（不区分大小写）。
//
// 返回是否至少移除了一个别名；未注册的别名静默忽略。
func (r *Registry) Unregister(aliases ...string) bool {
	found := false
	for _, alias := range aliases {
		name := strings.ToLower(alias)
		if _, ok := r.mods[name]; ok {
			delete(r.mods, name)
			found = true
		}
	}

	return found
}

// lookup 按小写名称查找回调。
func (r *Registry) lookup(name string) (ModifierFunc, bool) {
	fn, ok := r.mods[strings.ToLower(name)]

	return fn, ok
}

// RegisterModifier 在 [DefaultRegistry] 上注册修饰符。
func RegisterModifier(aliases []string, fn ModifierFunc) error {
	return DefaultRegistry.Register(aliases, fn)
}

// UnregisterModifier 在 [DefaultRegistry] 上注销修饰符。
func UnregisterModifier(aliases ...string) bool {
	return DefaultRegistry.Unregister(aliases...)
}
