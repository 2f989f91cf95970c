// Package gmm 实现广义多粒子米氏（GMM）散射求解：
// 球体集合在平面波照射下的多极展开系数、截面与远场图样。
package gmm

import (
	"fmt"
	"runtime"
	"sync"

	"gmm/interaction"
	"gmm/material"
	"gmm/optics"
	"gmm/types"
)

// Request 单次求解请求（一个波长点）
type Request struct {
	Target    *types.Target           // 几何与介电常数
	Incidence types.Incidence         // 入射平面波
	Policy    types.InteractionPolicy // 相互作用策略
	Order     int                     // 截断阶；≤ 0 自动选取
}

// Result 单次求解结果
type Result struct {
	Coefficients *types.CoefficientSet
	Sections     *types.SectionSet
}

// Solve 对单个 (几何, 波长) 组合执行完整求解管线：
// 装配 → LU 求解 → 截面
func Solve(req Request) (*Result, error) {
	sys, err := interaction.NewSystem(req.Target, req.Incidence, req.Policy, req.Order)
	if err != nil {
		return nil, err
	}
	cs, err := sys.Solve()
	if err != nil {
		return nil, err
	}
	sections, err := optics.Sections(cs)
	if err != nil {
		return nil, err
	}
	return &Result{Coefficients: cs, Sections: sections}, nil
}

// SweepRequest 波长扫描请求。
// 几何固定，各球材料按名称在每个波长点查询一次介电常数；
// Materials 的长度必须与 Target.Spheres 一致。
type SweepRequest struct {
	Target      *types.Target
	Materials   []string         // 各球的材料名
	Library     material.Service // 材料查询服务（只读注入）
	Incidence   types.Incidence  // 扫描中仅波长字段被逐点覆盖
	Policy      types.InteractionPolicy
	Order       int
	Wavelengths []float64 // 扫描波长点（nm）
	Workers     int       // 并行工作协程数；≤ 0 取 CPU 核数
}

// SweepPoint 单个波长点的结果（Err 非空时该点失败，其余点不受影响）
type SweepPoint struct {
	Wavelength float64
	Result     *Result
	Err        error
}

// Sweep 并行执行波长扫描
// 每个波长点独立：查材料 → 装配 → 求解 → 截面。单点失败记录
// 在该点的 Err 上，不中断其余波长。返回切片与 Wavelengths 等长
// 且顺序一致。
func Sweep(req SweepRequest) ([]SweepPoint, error) {
	if len(req.Materials) != len(req.Target.Spheres) {
		return nil, fmt.Errorf("gmm: 材料名数量 %d 与球数 %d 不一致", len(req.Materials), len(req.Target.Spheres))
	}
	if req.Library == nil {
		return nil, fmt.Errorf("gmm: 未提供材料服务")
	}
	if len(req.Wavelengths) == 0 {
		return nil, fmt.Errorf("gmm: 扫描波长列表为空")
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(req.Wavelengths) {
		workers = len(req.Wavelengths)
	}

	points := make([]SweepPoint, len(req.Wavelengths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				points[i] = solvePoint(&req, req.Wavelengths[i])
			}
		}()
	}
	for i := range req.Wavelengths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return points, nil
}

// solvePoint 求解单个波长点（含材料查询；每点独立副本，工作协程间无共享）
func solvePoint(req *SweepRequest, wavelength float64) SweepPoint {
	pt := SweepPoint{Wavelength: wavelength}

	// 本波长下的几何副本：介电常数逐球填充
	spheres := make([]types.Sphere, len(req.Target.Spheres))
	copy(spheres, req.Target.Spheres)
	for j := range spheres {
		eps, err := req.Library.Permittivity(req.Materials[j], wavelength)
		if err != nil {
			pt.Err = fmt.Errorf("球 %d 材料 %q: %w", j, req.Materials[j], err)
			return pt
		}
		spheres[j].Permittivity = eps
	}
	target := &types.Target{Spheres: spheres, MediumIndex: req.Target.MediumIndex}

	inc := req.Incidence
	inc.Wavelength = wavelength

	res, err := Solve(Request{
		Target:    target,
		Incidence: inc,
		Policy:    req.Policy,
		Order:     req.Order,
	})
	if err != nil {
		pt.Err = fmt.Errorf("波长 %g nm: %w", wavelength, err)
		return pt
	}
	pt.Result = res
	return pt
}
