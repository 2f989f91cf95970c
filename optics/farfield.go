package optics

import (
	"fmt"
	"iter"
	"math"

	"gonum.org/v1/gonum/integrate"

	"gmm/special"
	"gmm/types"
)

// 远场散射幅度。散射场的渐近形式为
//
//	E_s → (e^{ikr}/(kr))·F(θ,φ)
//
// 各球的出射波以公共原点重新参考，相位因子 e^{-ik·r̂·R_j}：
//
//	F_θ = Σ_j e^{-ik·r̂·R_j} Σ_{nm} i·(-i)^n·e^{imφ}·[a·τ_nm(θ) + b·π_nm(θ)]
//	F_φ = Σ_j e^{-ik·r̂·R_j} Σ_{nm}  -(-i)^n·e^{imφ}·[a·π_nm(θ) + b·τ_nm(θ)]
//
// 微分截面 dC/dΩ = (|F_θ|² + |F_φ|²)/k²。角度为波束系角度
// （θ=0 即前向）。

// Grid 远场角度网格（θ ∈ [0,π]、φ ∈ [0,2π] 均匀含端点采样）
type Grid struct {
	ThetaCount int // θ 方向采样数（≥ 3）
	PhiCount   int // φ 方向采样数（≥ 4）
}

// Sample 单个远场方向上的幅度与强度
type Sample struct {
	Theta, Phi   float64    // 波束系角度（rad）
	ETheta, EPhi complex128 // 复散射幅度两个偏振分量
	Intensity    float64    // 微分截面 dC/dΩ（nm²/sr）
}

// Pattern 远场辐射图样评估器（惰性逐点求值）
type Pattern struct {
	cs   *types.CoefficientSet
	grid Grid
}

// NewPattern 创建远场评估器
// 参数:
//
//	cs   - 求解后的系数集
//	grid - 角度网格
func NewPattern(cs *types.CoefficientSet, grid Grid) (*Pattern, error) {
	if grid.ThetaCount < 3 {
		return nil, fmt.Errorf("gmm: far-field theta count must be at least 3, got %d", grid.ThetaCount)
	}
	if grid.PhiCount < 4 {
		return nil, fmt.Errorf("gmm: far-field phi count must be at least 4, got %d", grid.PhiCount)
	}
	return &Pattern{cs: cs, grid: grid}, nil
}

// Amplitude 计算单个方向 (θ, φ) 的远场散射幅度
func (p *Pattern) Amplitude(theta, phi float64) (etheta, ephi complex128) {
	ang := special.NewAngularTable(p.cs.Order, theta)
	return p.amplitudeAt(theta, phi, ang)
}

// amplitudeAt 复用角函数表的内部求值（同一 θ 扫多个 φ 时避免重算）
func (p *Pattern) amplitudeAt(theta, phi float64, ang *special.AngularTable) (etheta, ephi complex128) {
	k := p.cs.Wavenumber
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	// r̂ 的波束系分量
	rx, ry, rz := sinT*cosP, sinT*sinP, cosT

	for j := range p.cs.Spheres {
		sc := &p.cs.Spheres[j]
		// 公共原点相位 e^{-ik·r̂·R_j}
		dot := k * (rx*sc.Position.X + ry*sc.Position.Y + rz*sc.Position.Z)
		sd, cd := math.Sincos(dot)
		shift := complex(cd, -sd)

		var ft, fp complex128
		minusI := complex(0, -1)
		inPow := complex(1, 0) // (-i)^n 累乘
		for n := 1; n <= p.cs.Order; n++ {
			inPow *= minusI
			for m := -n; m <= n; m++ {
				r := types.Idx(n, m)
				a, b := sc.A[r], sc.B[r]
				if a == 0 && b == 0 {
					continue
				}
				sm, cm := math.Sincos(float64(m) * phi)
				eimphi := complex(cm, sm)
				tau := complex(ang.Tau(n, m), 0)
				pi := complex(ang.Pi(n, m), 0)
				ft += inPow * eimphi * (a*tau + b*pi)
				fp += inPow * eimphi * (a*pi + b*tau)
			}
		}
		etheta += shift * complex(0, 1) * ft
		ephi -= shift * fp
	}
	return etheta, ephi
}

// Samples 返回整个网格的惰性样本序列（按 θ 外层、φ 内层遍历）
func (p *Pattern) Samples() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		k2 := p.cs.Wavenumber * p.cs.Wavenumber
		for it := 0; it < p.grid.ThetaCount; it++ {
			theta := math.Pi * float64(it) / float64(p.grid.ThetaCount-1)
			ang := special.NewAngularTable(p.cs.Order, theta)
			for ip := 0; ip < p.grid.PhiCount; ip++ {
				phi := 2 * math.Pi * float64(ip) / float64(p.grid.PhiCount-1)
				et, ep := p.amplitudeAt(theta, phi, ang)
				s := Sample{
					Theta:  theta,
					Phi:    phi,
					ETheta: et,
					EPhi:   ep,
					Intensity: (real(et)*real(et) + imag(et)*imag(et) +
						real(ep)*real(ep) + imag(ep)*imag(ep)) / k2,
				}
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Integrate 对辐射图样做角度求积，返回总散射截面与求积残差估计
// 返回:
//
//	power    - ∫ (dC/dΩ)·sinθ dθ dφ（nm²，即远场意义下的 Csca）
//	residual - 与半分辨率网格求积结果的相对偏差（离散化误差估计）
func (p *Pattern) Integrate() (power, residual float64, err error) {
	power = p.quadrature(p.grid)
	halfGrid := Grid{ThetaCount: p.grid.ThetaCount/2 + 1, PhiCount: p.grid.PhiCount/2 + 1}
	if halfGrid.ThetaCount < 3 || halfGrid.PhiCount < 4 {
		return power, 0, fmt.Errorf("gmm: far-field grid too coarse for residual estimate")
	}
	halfPower := p.quadrature(halfGrid)
	if power > 0 {
		residual = math.Abs(power-halfPower) / power
	}
	return power, residual, nil
}

// quadrature 复化梯形求积：先沿 φ 积分，再带 sinθ 权重沿 θ 积分
func (p *Pattern) quadrature(grid Grid) float64 {
	thetas := make([]float64, grid.ThetaCount)
	rows := make([]float64, grid.ThetaCount)
	phis := make([]float64, grid.PhiCount)
	for ip := range phis {
		phis[ip] = 2 * math.Pi * float64(ip) / float64(grid.PhiCount-1)
	}
	k2 := p.cs.Wavenumber * p.cs.Wavenumber

	intens := make([]float64, grid.PhiCount)
	for it := 0; it < grid.ThetaCount; it++ {
		theta := math.Pi * float64(it) / float64(grid.ThetaCount-1)
		thetas[it] = theta
		ang := special.NewAngularTable(p.cs.Order, theta)
		for ip, phi := range phis {
			et, ep := p.amplitudeAt(theta, phi, ang)
			intens[ip] = (real(et)*real(et) + imag(et)*imag(et) +
				real(ep)*real(ep) + imag(ep)*imag(ep)) / k2
		}
		rows[it] = integrate.Trapezoidal(phis, intens) * math.Sin(theta)
	}
	return integrate.Trapezoidal(thetas, rows)
}
