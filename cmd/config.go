package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"gonum.org/v1/gonum/spatial/r3"

	"gmm/types"
)

// SphereConf 单个球的配置条目
type SphereConf struct {
	Position [3]float64 // 球心（nm）
	Radius   float64    // 半径（nm）
	Material string     // 材料名（见 material.Default）
}

// Config 扫描任务的全部参数
type Config struct {
	Spheres     []SphereConf
	MediumIndex float64 // 背景介质折射率

	// 入射平面波：欧拉角（rad）
	Alpha float64
	Beta  float64
	Gamma float64

	// 波长扫描范围（nm）
	WavelengthMin  float64
	WavelengthMax  float64
	WavelengthStep float64

	Order       int     // 截断阶；0 表示自动
	Cutoff      float64 // 相互作用截断；0 表示全耦合
	QuasiStatic bool    // 近场准静态平移
	Workers     int     // 并行度；0 取 CPU 核数

	// 输出文件；留空则跳过对应输出
	SpectrumCSV  string
	SpectrumPNG  string
	FarFieldHTML string

	// 远场图样：取样波长与角度网格
	FarFieldWavelength float64
	ThetaCount         int
	PhiCount           int
}

// DefaultConf 默认参数：水中 80nm 金二聚体的可见光扫描
var DefaultConf = &Config{
	Spheres: []SphereConf{
		{Position: [3]float64{-50, 0, 0}, Radius: 40, Material: "gold"},
		{Position: [3]float64{50, 0, 0}, Radius: 40, Material: "gold"},
	},
	MediumIndex:        1.33,
	WavelengthMin:      400,
	WavelengthMax:      800,
	WavelengthStep:     5,
	Order:              0,
	Workers:            0,
	SpectrumCSV:        "spectrum.csv",
	SpectrumPNG:        "spectrum.png",
	FarFieldHTML:       "farfield.html",
	FarFieldWavelength: 550,
	ThetaCount:         91,
	PhiCount:           121,
}

// ParseConfig 解析指定路径的 TOML 配置文件
func ParseConfig(path string) (*Config, error) {
	// 配置文件覆盖默认参数的副本，不改动包级默认值
	conf := *DefaultConf
	_, err := toml.DecodeFile(path, &conf)
	return &conf, err
}

// Target 由配置构造散射几何
func (c *Config) Target() (*types.Target, []string, error) {
	if len(c.Spheres) == 0 {
		return nil, nil, fmt.Errorf("配置中没有球体")
	}
	spheres := make([]types.Sphere, len(c.Spheres))
	names := make([]string, len(c.Spheres))
	for i, s := range c.Spheres {
		spheres[i] = types.Sphere{
			Position: r3.Vec{X: s.Position[0], Y: s.Position[1], Z: s.Position[2]},
			Radius:   s.Radius,
		}
		names[i] = s.Material
	}
	return &types.Target{Spheres: spheres, MediumIndex: c.MediumIndex}, names, nil
}

// Wavelengths 由配置展开扫描波长点
func (c *Config) Wavelengths() ([]float64, error) {
	if c.WavelengthStep <= 0 || c.WavelengthMax < c.WavelengthMin {
		return nil, fmt.Errorf("波长范围非法: [%g, %g] 步长 %g", c.WavelengthMin, c.WavelengthMax, c.WavelengthStep)
	}
	var out []float64
	for wl := c.WavelengthMin; wl <= c.WavelengthMax+1e-9; wl += c.WavelengthStep {
		out = append(out, wl)
	}
	return out, nil
}
