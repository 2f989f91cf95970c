package interaction

import (
	"errors"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"gmm/types"
)

// singleSphere 测试夹具：水介质中的一个电介质球
func singleSphere() *types.Target {
	return &types.Target{
		Spheres: []types.Sphere{
			{Position: r3.Vec{}, Radius: 50, Permittivity: complex(2.25, 0)},
		},
		MediumIndex: 1.33,
	}
}

// TestSingleSphereReducesToMie 函数验证单球系统精确退化为米氏解。
func TestSingleSphereReducesToMie(t *testing.T) {
	inc := types.Incidence{Wavelength: 500}
	sys, err := NewSystem(singleSphere(), inc, types.InteractionPolicy{}, 4)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	cs, err := sys.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	sc := cs.Spheres[0]
	L := types.Slots(cs.Order)
	for r := 0; r < L; r++ {
		n, _ := types.Degree(r)
		wantA := -sc.MieA[n-1] * sc.P[r]
		wantB := -sc.MieB[n-1] * sc.Q[r]
		if cmplx.Abs(sc.A[r]-wantA) > 1e-12 {
			t.Errorf("slot %d: a = %v, isolated Mie gives %v", r, sc.A[r], wantA)
		}
		if cmplx.Abs(sc.B[r]-wantB) > 1e-12 {
			t.Errorf("slot %d: b = %v, isolated Mie gives %v", r, sc.B[r], wantB)
		}
	}
}

// TestIncidentOnlyDipoleChannels 函数验证平面波只激发 m=±1 通道。
func TestIncidentOnlyDipoleChannels(t *testing.T) {
	p, q := incidentCoefficients(3, 0.01, 0.3, r3.Vec{Z: 40})
	for r := 0; r < types.Slots(3); r++ {
		_, m := types.Degree(r)
		if m == 1 || m == -1 {
			if p[r] == 0 || q[r] == 0 {
				t.Errorf("slot %d (m=%d): expected nonzero incident coefficient", r, m)
			}
			continue
		}
		if p[r] != 0 || q[r] != 0 {
			t.Errorf("slot %d (m=%d): p=%v q=%v, expected zero", r, m, p[r], q[r])
		}
	}
}

// TestBeamBasisOrthonormal 函数验证波束基为右手正交归一系。
func TestBeamBasisOrthonormal(t *testing.T) {
	inc := types.Incidence{Alpha: 0.7, Beta: 1.2, Gamma: 0.4}
	xb, yb, zb := beamBasis(inc)
	if d := r3.Dot(xb, yb); absF(d) > 1e-14 {
		t.Errorf("xb·yb = %g, expected 0", d)
	}
	if d := r3.Dot(xb, zb); absF(d) > 1e-14 {
		t.Errorf("xb·zb = %g, expected 0", d)
	}
	if d := r3.Norm(zb) - 1; absF(d) > 1e-14 {
		t.Errorf("|zb| = %g, expected 1", r3.Norm(zb))
	}
	// 右手性：xb × yb = zb
	cr := r3.Cross(xb, yb)
	if r3.Norm(r3.Sub(cr, zb)) > 1e-14 {
		t.Errorf("xb×yb = %v, expected zb = %v", cr, zb)
	}
	// zb 即传播方向
	if r3.Norm(r3.Sub(zb, inc.Direction())) > 1e-14 {
		t.Errorf("zb = %v, expected %v", zb, inc.Direction())
	}
}

// TestFarSeparatedSpheresDecouple 函数验证远距球对各自趋于孤立米氏解。
func TestFarSeparatedSpheresDecouple(t *testing.T) {
	target := &types.Target{
		Spheres: []types.Sphere{
			{Position: r3.Vec{}, Radius: 40, Permittivity: complex(2.25, 0)},
			{Position: r3.Vec{X: 40000}, Radius: 40, Permittivity: complex(2.25, 0)},
		},
		MediumIndex: 1.0,
	}
	inc := types.Incidence{Wavelength: 600}
	sys, err := NewSystem(target, inc, types.InteractionPolicy{}, 3)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	cs, err := sys.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	for j, sc := range cs.Spheres {
		for r := range sc.A {
			n, _ := types.Degree(r)
			want := -sc.MieA[n-1] * sc.P[r]
			if cmplx.Abs(sc.A[r]-want) > 1e-4*(1+cmplx.Abs(want)) {
				t.Errorf("sphere %d slot %d: a = %v, expected near-isolated %v", j, r, sc.A[r], want)
			}
		}
	}
}

// TestCutoffDisablesCoupling 函数验证截断策略将远对置零后与孤立解一致。
func TestCutoffDisablesCoupling(t *testing.T) {
	target := &types.Target{
		Spheres: []types.Sphere{
			{Position: r3.Vec{}, Radius: 40, Permittivity: complex(2.25, 0)},
			{Position: r3.Vec{X: 100}, Radius: 40, Permittivity: complex(2.25, 0)},
		},
		MediumIndex: 1.0,
	}
	inc := types.Incidence{Wavelength: 600}
	// Cutoff=1：间距 100 > 1×40，耦合块被置零
	sys, err := NewSystem(target, inc, types.InteractionPolicy{Cutoff: 1}, 3)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	cs, err := sys.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	for j, sc := range cs.Spheres {
		for r := range sc.A {
			n, _ := types.Degree(r)
			want := -sc.MieA[n-1] * sc.P[r]
			if cmplx.Abs(sc.A[r]-want) > 1e-12 {
				t.Errorf("sphere %d slot %d: cutoff solve gives %v, expected exactly isolated %v", j, r, sc.A[r], want)
			}
		}
	}
}

// TestCoincidentSpheresRejected 函数验证重合球心触发退化几何错误。
func TestCoincidentSpheresRejected(t *testing.T) {
	target := &types.Target{
		Spheres: []types.Sphere{
			{Position: r3.Vec{X: 10}, Radius: 5, Permittivity: 2},
			{Position: r3.Vec{X: 10}, Radius: 5, Permittivity: 2},
		},
		MediumIndex: 1.0,
	}
	_, err := NewSystem(target, types.Incidence{Wavelength: 500}, types.InteractionPolicy{}, 2)
	if !errors.Is(err, types.ErrDegenerateGeometry) {
		t.Fatalf("coincident spheres should give ErrDegenerateGeometry, got %v", err)
	}
}

// TestInvalidWavelengthRejected 函数验证非法波长被拒绝。
func TestInvalidWavelengthRejected(t *testing.T) {
	_, err := NewSystem(singleSphere(), types.Incidence{}, types.InteractionPolicy{}, 2)
	if err == nil {
		t.Fatalf("zero wavelength should have failed")
	}
}

// TestAutoOrder 函数验证 order ≤ 0 时自动选取截断阶。
func TestAutoOrder(t *testing.T) {
	sys, err := NewSystem(singleSphere(), types.Incidence{Wavelength: 500}, types.InteractionPolicy{}, 0)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	cs, err := sys.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if cs.Order < 3 {
		t.Errorf("auto order = %d, expected at least 3", cs.Order)
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
