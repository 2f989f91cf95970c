package types

import "errors"

// 默认参数常量定义
var (
	Tolerance        = 1e-6  // 能量守恒/收敛校验容差（相对值）
	ResidualMax      = 1e-8  // 线性求解后相对残差上限
	MinSeparation    = 1e-9  // 球心最小允许间距（nm），低于视为重合
	RecurrenceMargin = 15    // 向下递推起始阶的安全裕量
)

// 错误类型定义（单个波长作业内为终止性错误，不得静默吞掉）
var (
	// ErrDegenerateGeometry 两球心重合，平移矩阵无定义
	ErrDegenerateGeometry = errors.New("gmm: degenerate geometry: sphere centers coincide")
	// ErrNumericalInstability 特殊函数递推发散或产生非有限值
	ErrNumericalInstability = errors.New("gmm: numerical instability in recurrence evaluation")
	// ErrSingularSystem 相互作用矩阵奇异或病态，无法可靠求解
	ErrSingularSystem = errors.New("gmm: interaction system is singular or ill-conditioned")
	// ErrEnergyViolation 截面违反能量守恒（上游截断或求解误差的信号）
	ErrEnergyViolation = errors.New("gmm: cross sections violate energy conservation")
)
