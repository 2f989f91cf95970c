// Package translate 计算矢量球面波函数的平移加法定理系数。
package translate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"gmm/special"
	"gmm/types"
)

// Coupling 单对球心偏移下的平移系数表。
//
// 语义：以 O_s 为中心的出射波 (n,m) 展开为以 O_t 为中心的正则波
// (ν,μ)，偏移 d = O_s - O_t：
//
//	M_nm(r_s) = Σ_{νμ} [ A^{nm}_{νμ}·M_{νμ}(r_t) + B^{nm}_{νμ}·N_{νμ}(r_t) ]
//	N_nm(r_s) = Σ_{νμ} [ A^{nm}_{νμ}·N_{νμ}(r_t) + B^{nm}_{νμ}·M_{νμ}(r_t) ]
//
// 存储为 L×L 行优先：行 = 目标槽位 Idx(ν,μ)，列 = 源槽位 Idx(n,m)。
type Coupling struct {
	Order int
	A, B  []complex128
}

// New 计算阶数 order、偏移 d（nm）、波数 k（nm⁻¹）下的平移系数
// 参数:
//
//	order       - 截断阶
//	k           - 基体内波数
//	d           - 球心偏移向量（源中心 - 目标中心）
//	quasiStatic - 准静态核开关（径向因子取近场主导项）
//
// 返回:
//
//	平移系数表；|d| 低于 types.MinSeparation 时返回
//	types.ErrDegenerateGeometry
//
// 标量核展开为 Gaunt 型求和：
//
//	A^{nm}_{νμ} = (-1)^m·i^{ν-n}·√((2n+1)(2ν+1)/(n(n+1)ν(ν+1))) ×
//	  Σ_q (-i)^q·h_q(kd)·P̄_q^s(cosθ_d)·e^{isφ_d}·√(4π(2q+1)) ×
//	       ½[n(n+1)+ν(ν+1)-q(q+1)]·w3j(n,ν,q;0,0,0)·w3j(n,ν,q;m,-μ,-s)
//	B^{nm}_{νμ} = -i·(-1)^m·i^{ν-n}·√(同上) ×
//	  Σ_q (-i)^q·h_q(kd)·P̄_q^s(cosθ_d)·e^{isφ_d}·√(4π(2q+1)) ×
//	       ½√(((n+ν+1)²-q²)(q²-(n-ν)²))·√((2q+1)/(2q-1)) ×
//	       w3j(n,ν,q-1;0,0,0)·w3j(n,ν,q;m,-μ,-s)
//
// 其中 s = m-μ；A 的 q 取 n+ν 的同奇偶，B 取反奇偶。
func New(order int, k float64, d r3.Vec, quasiStatic bool) (*Coupling, error) {
	kd, cosTheta, phi, err := offsetGeometry(order, k, d)
	if err != nil {
		return nil, err
	}
	qmax := 2 * order

	// 径向因子：完整核用球汉克尔函数，准静态核用其近场主导项
	rad := make([]complex128, qmax+1)
	if quasiStatic {
		for q := 0; q <= qmax; q++ {
			rad[q] = complex(0, -special.DoubleFactorial(2*q-1)/math.Pow(kd, float64(q+1)))
		}
	} else {
		h, err := special.SphericalH1(qmax, kd)
		if err != nil {
			return nil, err
		}
		rad = h
	}
	return build(order, cosTheta, phi, rad), nil
}

// NewRegular 计算正则（贝塞尔 j 径向因子）的平移系数。
// 出射波在球心间的同型重展开（出射 → 出射）使用该核；
// 相干散射截面的交叉项也由它给出。d → 0 时退化为单位映射。
func NewRegular(order int, k float64, d r3.Vec) (*Coupling, error) {
	kd, cosTheta, phi, err := offsetGeometry(order, k, d)
	if err != nil {
		return nil, err
	}
	qmax := 2 * order
	j, err := special.SphericalJ(qmax, kd)
	if err != nil {
		return nil, err
	}
	rad := make([]complex128, qmax+1)
	for q := range rad {
		rad[q] = complex(j[q], 0)
	}
	return build(order, cosTheta, phi, rad), nil
}

// offsetGeometry 校验偏移并返回其球坐标参数
func offsetGeometry(order int, k float64, d r3.Vec) (kd, cosTheta, phi float64, err error) {
	if order < 1 {
		return 0, 0, 0, fmt.Errorf("translate: order must be at least 1, got %d", order)
	}
	dist := r3.Norm(d)
	if dist < types.MinSeparation {
		return 0, 0, 0, fmt.Errorf("%w: translation offset %v", types.ErrDegenerateGeometry, d)
	}
	return k * dist, d.Z / dist, math.Atan2(d.Y, d.X), nil
}

// build 在给定径向因子表下展开 Gaunt 求和
func build(order int, cosTheta, phi float64, rad []complex128) *Coupling {
	qmax := 2 * order
	leg := special.NewLegendreTable(qmax, cosTheta)

	// e^{isφ}，s ∈ [-qmax, qmax]（下标偏移 qmax）
	eisphi := make([]complex128, 2*qmax+1)
	for s := -qmax; s <= qmax; s++ {
		sc, cc := math.Sincos(float64(s) * phi)
		eisphi[s+qmax] = complex(cc, sc)
	}

	L := types.Slots(order)
	c := &Coupling{
		Order: order,
		A:     make([]complex128, L*L),
		B:     make([]complex128, L*L),
	}

	for col := 0; col < L; col++ {
		n, m := types.Degree(col)
		for row := 0; row < L; row++ {
			nu, mu := types.Degree(row)
			s := m - mu

			// (-1)^m·i^{ν-n}·√((2n+1)(2ν+1)/(n(n+1)ν(ν+1)))
			pref := ipow(nu-n) * complex(math.Sqrt(float64((2*n+1)*(2*nu+1))/float64(n*(n+1)*nu*(nu+1))), 0)
			if m%2 != 0 {
				pref = -pref
			}

			angular := eisphi[s+qmax]

			// A 族：q 与 n+ν 同奇偶
			var sumA complex128
			qlow := n - nu
			if qlow < 0 {
				qlow = -qlow
			}
			if as := abs(s); as > qlow {
				qlow = as
			}
			if (qlow+n+nu)%2 != 0 {
				qlow++
			}
			for q := qlow; q <= n+nu; q += 2 {
				w0 := special.Wigner3jZero(n, nu, q)
				if w0 == 0 {
					continue
				}
				wm := special.Wigner3j(n, nu, q, m, -mu, -s)
				if wm == 0 {
					continue
				}
				bracket := 0.5 * float64(n*(n+1)+nu*(nu+1)-q*(q+1))
				sumA += ipow(-q) * rad[q] *
					complex(leg.Get(q, s)*math.Sqrt(4*math.Pi*float64(2*q+1))*bracket*w0*wm, 0)
			}

			// B 族：q 与 n+ν 反奇偶，q ≥ |n-ν|+1
			var sumB complex128
			qlow = n - nu
			if qlow < 0 {
				qlow = -qlow
			}
			qlow++
			if as := abs(s); as > qlow {
				qlow = as
			}
			if (qlow+n+nu+1)%2 != 0 {
				qlow++
			}
			for q := qlow; q <= n+nu; q += 2 {
				w0 := special.Wigner3jZero(n, nu, q-1)
				if w0 == 0 {
					continue
				}
				wm := special.Wigner3j(n, nu, q, m, -mu, -s)
				if wm == 0 {
					continue
				}
				sq := float64((n+nu+1)*(n+nu+1)-q*q) * float64(q*q-(n-nu)*(n-nu))
				bracket := 0.5 * math.Sqrt(sq) * math.Sqrt(float64(2*q+1)/float64(2*q-1))
				sumB += ipow(-q) * rad[q] *
					complex(leg.Get(q, s)*math.Sqrt(4*math.Pi*float64(2*q+1))*bracket*w0*wm, 0)
			}

			c.A[row*L+col] = pref * angular * sumA
			c.B[row*L+col] = complex(0, -1) * pref * angular * sumB
		}
	}
	return c
}

// Reverse 返回反向偏移（d → -d）的平移系数表。
// 宇称关系：A(-d) = (-1)^{n+ν}·A(d)，B(-d) = (-1)^{n+ν+1}·B(d)。
func (c *Coupling) Reverse() *Coupling {
	L := types.Slots(c.Order)
	r := &Coupling{
		Order: c.Order,
		A:     make([]complex128, L*L),
		B:     make([]complex128, L*L),
	}
	rowDeg := make([]int, L)
	for i := 0; i < L; i++ {
		rowDeg[i], _ = types.Degree(i)
	}
	for row := 0; row < L; row++ {
		for col := 0; col < L; col++ {
			if (rowDeg[row]+rowDeg[col])%2 == 0 {
				r.A[row*L+col] = c.A[row*L+col]
				r.B[row*L+col] = -c.B[row*L+col]
			} else {
				r.A[row*L+col] = -c.A[row*L+col]
				r.B[row*L+col] = c.B[row*L+col]
			}
		}
	}
	return r
}

// ipow 计算 i^k（k 可为负）
func ipow(k int) complex128 {
	switch ((k % 4) + 4) % 4 {
	case 0:
		return 1
	case 1:
		return complex(0, 1)
	case 2:
		return -1
	default:
		return complex(0, -1)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
