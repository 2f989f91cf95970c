package interaction

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"gmm/maths"
	"gmm/mie"
	"gmm/translate"
	"gmm/types"
)

// System 多球相互作用线性系统。
//
// 未知量为各球的散射系数，按球分块排列：球 j 占用行/列区间
// [j·2L, (j+1)·2L)，前 L 个槽位为 a 族（电型），后 L 个为 b 族
// （磁型）。系统形为
//
//	a^j_{νμ} + ā^j_ν·Σ_{l≠j}Σ_{nm}[A·a^l_{nm} + B·b^l_{nm}] = -ā^j_ν·p̃^j_{νμ}
//	b^j_{νμ} + b̄^j_ν·Σ_{l≠j}Σ_{nm}[B·a^l_{nm} + A·b^l_{nm}] = -b̄^j_ν·q̃^j_{νμ}
//
// 其中 ā、b̄ 为孤立球米氏系数，A、B 为平移系数。单球时退化为
// a_{nm} = -ā_n·p̃_{nm}。
type System struct {
	order   int
	slots   int
	k       float64
	target  *types.Target
	inc     types.Incidence
	matrix  maths.Matrix[complex128]
	rhs     maths.Vector[complex128]
	mieA    [][]complex128
	mieB    [][]complex128
	incP    [][]complex128
	incQ    [][]complex128
	beamPos []r3.Vec
}

// NewSystem 装配相互作用系统
// 参数:
//
//	target - 球体集合（将被校验）
//	inc    - 入射平面波
//	policy - 相互作用策略（截断与准静态开关）
//	order  - 截断阶；≤ 0 时按最大尺寸参数自动选取（Wiscombe 判据）
//
// 返回:
//
//	可求解的系统实例，错误信息
func NewSystem(target *types.Target, inc types.Incidence, policy types.InteractionPolicy, order int) (*System, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if inc.Wavelength <= 0 {
		return nil, fmt.Errorf("gmm: wavelength must be positive, got %g", inc.Wavelength)
	}
	k := inc.Wavenumber(target.MediumIndex)

	// 自动截断阶：所有球中最大尺寸参数的 Wiscombe 判据
	if order <= 0 {
		xmax := 0.0
		for _, sp := range target.Spheres {
			if x := k * sp.Radius; x > xmax {
				xmax = x
			}
		}
		order = mie.StopOrder(xmax)
	}

	s := &System{
		order:  order,
		slots:  types.Slots(order),
		k:      k,
		target: target,
		inc:    inc,
	}
	ns := len(target.Spheres)

	// 各球的孤立米氏响应
	s.mieA = make([][]complex128, ns)
	s.mieB = make([][]complex128, ns)
	for j, sp := range target.Spheres {
		mrel := sp.RefractiveIndex() / complex(target.MediumIndex, 0)
		a, b, err := mie.Coefficients(order, k*sp.Radius, mrel)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", j, err)
		}
		s.mieA[j] = a
		s.mieB[j] = b
	}

	// 几何旋入波束坐标系，计算入射展开系数
	xb, yb, zb := beamBasis(inc)
	s.beamPos = make([]r3.Vec, ns)
	s.incP = make([][]complex128, ns)
	s.incQ = make([][]complex128, ns)
	for j, sp := range target.Spheres {
		s.beamPos[j] = beamPosition(sp.Position, xb, yb, zb)
		s.incP[j], s.incQ[j] = incidentCoefficients(order, k, inc.Gamma, s.beamPos[j])
	}

	if err := s.assemble(policy); err != nil {
		return nil, err
	}
	return s, nil
}

// Dim 返回系统维度（未知量个数）
func (s *System) Dim() int {
	return len(s.target.Spheres) * 2 * s.slots
}

// assemble 填充系统矩阵与右端向量
func (s *System) assemble(policy types.InteractionPolicy) error {
	L := s.slots
	ns := len(s.target.Spheres)
	dim := ns * 2 * L
	s.matrix = maths.NewDenseMatrix[complex128](dim, dim)
	s.rhs = maths.NewDenseVector[complex128](dim)

	// 槽位度数查询表
	deg := make([]int, L)
	for i := 0; i < L; i++ {
		deg[i], _ = types.Degree(i)
	}

	// 对角单位块与右端项
	for j := 0; j < ns; j++ {
		base := j * 2 * L
		for r := 0; r < L; r++ {
			s.matrix.Set(base+r, base+r, 1)
			s.matrix.Set(base+L+r, base+L+r, 1)
			s.rhs.Set(base+r, -s.mieA[j][deg[r]-1]*s.incP[j][r])
			s.rhs.Set(base+L+r, -s.mieB[j][deg[r]-1]*s.incQ[j][r])
		}
	}

	// 每个无序球对计算一次平移系数，反向块用宇称关系取得
	for j := 0; j < ns; j++ {
		for l := j + 1; l < ns; l++ {
			d := r3.Sub(s.beamPos[l], s.beamPos[j])
			sep := r3.Norm(d)
			if !policy.Coupled(sep, s.target.Spheres[j].Radius, s.target.Spheres[l].Radius) {
				continue // 超出截断距离的球对视为不耦合
			}
			cJL, err := translate.New(s.order, s.k, d, policy.QuasiStatic)
			if err != nil {
				return fmt.Errorf("pair (%d,%d): %w", j, l, err)
			}
			s.stampPair(j, l, cJL, deg)
			s.stampPair(l, j, cJL.Reverse(), deg)
		}
	}
	return nil
}

// stampPair 将球 l 对球 j 的耦合块写入矩阵
// c 为 l → j 的平移系数表（行=j 的槽位，列=l 的槽位）
func (s *System) stampPair(j, l int, c *translate.Coupling, deg []int) {
	L := s.slots
	// 四个 L×L 子块视图：行按 j 的 a/b 族，列按 l 的 a/b 族
	aa := maths.NewSubMatrix(s.matrix, j*2*L, l*2*L, L, L)
	ab := maths.NewSubMatrix(s.matrix, j*2*L, l*2*L+L, L, L)
	ba := maths.NewSubMatrix(s.matrix, j*2*L+L, l*2*L, L, L)
	bb := maths.NewSubMatrix(s.matrix, j*2*L+L, l*2*L+L, L, L)

	for r := 0; r < L; r++ {
		fa := s.mieA[j][deg[r]-1]
		fb := s.mieB[j][deg[r]-1]
		for col := 0; col < L; col++ {
			av := c.A[r*L+col]
			bv := c.B[r*L+col]
			aa.Increment(r, col, fa*av)
			ab.Increment(r, col, fa*bv)
			ba.Increment(r, col, fb*bv)
			bb.Increment(r, col, fb*av)
		}
	}
}

// Solve 对系统执行 LU 分解求解并做残差校验
// 返回:
//
//	求解后的系数集；矩阵奇异或残差超限时返回 types.ErrSingularSystem
func (s *System) Solve() (*types.CoefficientSet, error) {
	dim := s.Dim()
	lu, err := maths.NewLU[complex128](dim)
	if err != nil {
		return nil, err
	}
	if err := lu.Decompose(s.matrix); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSingularSystem, err)
	}
	x := maths.NewDenseVector[complex128](dim)
	if err := lu.SolveReuse(s.rhs, x); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSingularSystem, err)
	}
	// 回代残差校验：病态系统可能通过分解但给出不可靠解
	if res := maths.RelativeResidual(s.matrix, x, s.rhs); res > types.ResidualMax {
		return nil, fmt.Errorf("%w: relative residual %g", types.ErrSingularSystem, res)
	}

	L := s.slots
	cs := &types.CoefficientSet{
		Order:      s.order,
		Wavenumber: s.k,
		Wavelength: s.inc.Wavelength,
		Spheres:    make([]types.SphereCoefficients, len(s.target.Spheres)),
	}
	for j := range s.target.Spheres {
		base := j * 2 * L
		sc := &cs.Spheres[j]
		sc.A = make([]complex128, L)
		sc.B = make([]complex128, L)
		for r := 0; r < L; r++ {
			sc.A[r] = x.Get(base + r)
			sc.B[r] = x.Get(base + L + r)
		}
		sc.P = append([]complex128(nil), s.incP[j]...)
		sc.Q = append([]complex128(nil), s.incQ[j]...)
		sc.MieA = append([]complex128(nil), s.mieA[j]...)
		sc.MieB = append([]complex128(nil), s.mieB[j]...)
		sc.Position = s.beamPos[j]
	}
	return cs, nil
}
