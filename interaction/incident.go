// Package interaction 装配并求解多球多极相互作用线性系统。
package interaction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"gmm/types"
)

// 入射平面波的多极展开。所有展开统一使用波束坐标系：
// z 轴沿传播方向，x 轴为偏振参考方向（几何整体旋入该系，
// 等价于旋转入射波而截面不变）。单位振幅平面波在该系中
// 只激发 m = ±1 通道：
//
//	q̃_{n,±1} = i^n·√(π(2n+1))·e^{∓iγ}   （M 族）
//	p̃_{n,±1} = ±i^n·√(π(2n+1))·e^{∓iγ}  （N 族）
//
// 球心不在原点时两族均乘以相位 e^{ik·z_j}（z_j 为波束系 z 坐标）。

// beamBasis 返回波束坐标系的三个基向量（实验室系分量）
// zb 沿传播方向，xb 为偏振参考方向，yb = zb × xb
func beamBasis(inc types.Incidence) (xb, yb, zb r3.Vec) {
	sb, cb := math.Sincos(inc.Beta)
	sa, ca := math.Sincos(inc.Alpha)
	zb = r3.Vec{X: sb * ca, Y: sb * sa, Z: cb}
	xb = r3.Vec{X: cb * ca, Y: cb * sa, Z: -sb}
	yb = r3.Vec{X: -sa, Y: ca, Z: 0}
	return xb, yb, zb
}

// beamPosition 将实验室系位置变换到波束坐标系
func beamPosition(p r3.Vec, xb, yb, zb r3.Vec) r3.Vec {
	return r3.Vec{
		X: r3.Dot(xb, p),
		Y: r3.Dot(yb, p),
		Z: r3.Dot(zb, p),
	}
}

// incidentCoefficients 计算波束系位置 pos 处球心的入射展开系数
// 参数:
//
//	order - 截断阶
//	k     - 基体内波数
//	gamma - 偏振角（rad）
//	pos   - 球心的波束系坐标
//
// 返回:
//
//	p - N 族（电型）系数，q - M 族（磁型）系数，长度均为 Slots(order)
func incidentCoefficients(order int, k, gamma float64, pos r3.Vec) (p, q []complex128) {
	L := types.Slots(order)
	p = make([]complex128, L)
	q = make([]complex128, L)

	sinG, cosG := math.Sincos(gamma)
	ePlus := complex(cosG, -sinG)  // e^{-iγ}，m=+1 通道
	eMinus := complex(cosG, sinG)  // e^{+iγ}，m=-1 通道
	sinZ, cosZ := math.Sincos(k * pos.Z)
	phase := complex(cosZ, sinZ) // e^{ikz}

	in := complex(1, 0) // i^n 累乘
	for n := 1; n <= order; n++ {
		in *= complex(0, 1)
		amp := in * complex(math.Sqrt(math.Pi*float64(2*n+1)), 0) * phase
		q[types.Idx(n, 1)] = amp * ePlus
		q[types.Idx(n, -1)] = amp * eMinus
		p[types.Idx(n, 1)] = amp * ePlus
		p[types.Idx(n, -1)] = -amp * eMinus
	}
	return p, q
}
