// Package material 提供按波长查询复介电常数的材料服务。
package material

import (
	"errors"
	"fmt"
	"sort"
)

// 错误类型定义
var (
	// ErrMaterialNotFound 请求的材料名未注册
	ErrMaterialNotFound = errors.New("gmm: material not found")
	// ErrWavelengthOutOfRange 波长超出表格覆盖范围（不做外推）
	ErrWavelengthOutOfRange = errors.New("gmm: wavelength outside tabulated range")
)

// Model 单一材料的色散模型
type Model interface {
	// Permittivity 返回自由空间波长（nm）处的相对复介电常数
	Permittivity(wavelength float64) (complex128, error)
}

// Service 材料查询服务：求解管线以只读方式注入该接口，
// 每个波长点求解前完成一次查询。
type Service interface {
	Permittivity(name string, wavelength float64) (complex128, error)
}

// Library 名称到色散模型的注册表，实现 Service
type Library struct {
	models map[string]Model
}

// NewLibrary 创建空注册表
func NewLibrary() *Library {
	return &Library{models: make(map[string]Model)}
}

// Register 注册（或覆盖）一个材料模型
func (l *Library) Register(name string, m Model) {
	l.models[name] = m
}

// Permittivity 按名称与波长查询介电常数
func (l *Library) Permittivity(name string, wavelength float64) (complex128, error) {
	m, ok := l.models[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
	}
	return m.Permittivity(wavelength)
}

// Table 实测光学常数 (n, k) 表，按波长线性内插。
// 范围外的查询是硬错误：光学常数外推不可靠，静默外推会把
// 数据缺口伪装成物理结果。
type Table struct {
	wavelengths []float64 // 升序波长节点（nm）
	n, k        []float64 // 对应的折射率实部与虚部
}

// NewTable 从 (波长, n, k) 三列数据构建内插表
// 参数:
//
//	wavelengths - 波长节点（nm，必须严格升序，至少两个）
//	n, k        - 对应折射率分量（长度与 wavelengths 相同）
func NewTable(wavelengths, n, k []float64) (*Table, error) {
	if len(wavelengths) < 2 {
		return nil, fmt.Errorf("gmm: material table needs at least 2 nodes, got %d", len(wavelengths))
	}
	if len(n) != len(wavelengths) || len(k) != len(wavelengths) {
		return nil, fmt.Errorf("gmm: material table column lengths differ: %d wavelengths, %d n, %d k",
			len(wavelengths), len(n), len(k))
	}
	for i := 1; i < len(wavelengths); i++ {
		if wavelengths[i] <= wavelengths[i-1] {
			return nil, fmt.Errorf("gmm: material table wavelengths must be strictly increasing at index %d", i)
		}
	}
	return &Table{
		wavelengths: append([]float64(nil), wavelengths...),
		n:           append([]float64(nil), n...),
		k:           append([]float64(nil), k...),
	}, nil
}

// Permittivity 线性内插 n、k 后返回 ε = (n+ik)²
func (t *Table) Permittivity(wavelength float64) (complex128, error) {
	lo, hi := t.wavelengths[0], t.wavelengths[len(t.wavelengths)-1]
	if wavelength < lo || wavelength > hi {
		return 0, fmt.Errorf("%w: %g nm not in [%g, %g]", ErrWavelengthOutOfRange, wavelength, lo, hi)
	}
	i := sort.SearchFloat64s(t.wavelengths, wavelength)
	if i == 0 {
		i = 1
	}
	w0, w1 := t.wavelengths[i-1], t.wavelengths[i]
	f := (wavelength - w0) / (w1 - w0)
	nr := t.n[i-1] + f*(t.n[i]-t.n[i-1])
	ni := t.k[i-1] + f*(t.k[i]-t.k[i-1])
	idx := complex(nr, ni)
	return idx * idx, nil
}

// evPerNM 光子能量换算常数：E(eV) = 1239.84193/λ(nm)
const evPerNM = 1239.84193

// Oscillator 洛伦兹振子项 f/(ω0² - ω² - iγω)（能量单位 eV）
type Oscillator struct {
	Strength float64 // 振子强度 f（eV²）
	Center   float64 // 共振能量 ω0（eV）
	Width    float64 // 阻尼 γ（eV）
}

// DrudeLorentz 德鲁德-洛伦兹解析色散模型（能量单位 eV）:
//
//	ε(ω) = ε∞ - ωp²/(ω² + iγω) + Σ f_i/(ω0i² - ω² - iγi·ω)
type DrudeLorentz struct {
	EpsInf      float64      // 高频背景 ε∞
	Plasma      float64      // 等离子体频率 ωp（eV）
	Damping     float64      // 德鲁德阻尼 γ（eV）
	Oscillators []Oscillator // 可选的带间跃迁振子
}

// Permittivity 计算解析模型在给定波长处的介电常数
func (d DrudeLorentz) Permittivity(wavelength float64) (complex128, error) {
	if wavelength <= 0 {
		return 0, fmt.Errorf("gmm: wavelength must be positive, got %g", wavelength)
	}
	w := evPerNM / wavelength
	eps := complex(d.EpsInf, 0)
	eps -= complex(d.Plasma*d.Plasma, 0) / complex(w*w, d.Damping*w)
	for _, o := range d.Oscillators {
		eps += complex(o.Strength, 0) / complex(o.Center*o.Center-w*w, -o.Width*w)
	}
	return eps, nil
}

// Constant 无色散常数折射率模型
type Constant complex128

// Permittivity 返回 ε = index²（与波长无关）
func (c Constant) Permittivity(float64) (complex128, error) {
	idx := complex128(c)
	return idx * idx, nil
}
