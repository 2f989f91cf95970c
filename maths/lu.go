package maths

import "errors"

// NewLU 创建稠密矩阵LU分解器（输入矩阵维度n）
// 参数:
//
//	n - 矩阵维度（必须为正整数）
//
// 返回:
//
//	LU接口实例，错误信息
func NewLU[T Number](n int) (LU[T], error) {
	if n < 1 {
		return nil, errors.New("lu dimension must be positive")
	}
	return &luDense[T]{
		n:        n,
		L:        NewDenseMatrix[T](n, n),
		U:        NewDenseMatrix[T](n, n),
		Y:        NewDenseVector[T](n),
		P:        make([]int, n),
		pinverse: make([]int, n),
	}, nil
}

// luDense 稠密矩阵LU分解实现（A=PLU，带部分主元）
// 实现PA = LU分解，其中：
//
//	P - 置换矩阵（用向量表示）
//	L - 单位下三角矩阵（对角线为1）
//	U - 上三角矩阵
//
// 复数矩阵的主元比较与奇异判定均基于模值 |·|。
type luDense[T Number] struct {
	n        int       // 矩阵维度（方阵n×n）
	L        Matrix[T] // 下三角矩阵L（L[i][i]=1，严格下三角存储消元因子）
	U        Matrix[T] // 上三角矩阵U（存储消元后上三角元素）
	Y        Vector[T] // 中间变量：存储前向替换结果Ly=Pb
	P        []int     // 置换向量：P[i] = 分解后第i行对应的原始矩阵行索引
	pinverse []int     // 逆置换向量：pinverse[i] = 原始第i行对应的分解后行索引
}

// Dim 获取矩阵维度
func (lu *luDense[T]) Dim() int {
	return lu.n
}

// init 初始化置换向量和L矩阵的对角线
// 参数:
//
//	matrix - 输入矩阵A（将被拷贝到U矩阵）
//
// 功能:
//  1. 清零L和U矩阵
//  2. 将输入矩阵A拷贝到U矩阵
//  3. 初始化置换向量P和pinverse为单位置换
//  4. 设置L矩阵对角线为1（单位下三角矩阵特性）
func (lu *luDense[T]) init(matrix Matrix[T]) {
	lu.L.Zero()
	lu.U.Zero()
	matrix.Copy(lu.U) // 将A拷贝到U，后续在U上进行原位消元
	var one T = 1
	for i := 0; i < lu.n; i++ {
		lu.P[i] = i         // 初始置换：分解后行i对应原始行i
		lu.pinverse[i] = i  // 初始逆置换：原始行i对应分解后行i
		lu.L.Set(i, i, one) // L对角线固定为1（单位下三角矩阵特性）
	}
}

// updatePermutation 更新置换向量（交换并同步更新逆置换）
func (lu *luDense[T]) updatePermutation(k, maxRow int) {
	// 交换P向量（分解后行对应的原始行索引）
	lu.P[k], lu.P[maxRow] = lu.P[maxRow], lu.P[k]
	// 同步更新逆置换向量（原始行对应的分解后行索引）
	lu.pinverse[lu.P[k]] = k
	lu.pinverse[lu.P[maxRow]] = maxRow
}

// Decompose 执行稠密矩阵LU分解（核心逻辑：高斯消元+部分主元）
// 参数:
//
//	matrix - 输入矩阵A（必须为方阵）
//
// 返回:
//
//	错误信息（如果矩阵奇异或维度不匹配）
//
// 算法步骤:
//  1. 初始化：拷贝A到U，初始化P、pinverse和L
//  2. 对每一列k（0到n-1）:
//     a. 部分主元选择：在U的当前列k中找[k, n-1]行的最大模值
//     b. 行交换：交换U的行，交换L的前k-1列，更新置换向量
//     c. 高斯消元：计算消元因子存入L，更新U矩阵
func (lu *luDense[T]) Decompose(matrix Matrix[T]) error {
	// 1. 输入合法性校验
	if !matrix.IsSquare() {
		return errors.New("lu dense decompose: input must be square matrix")
	}
	if matrix.Rows() != lu.n {
		return errors.New("lu dense decompose: matrix dimension mismatch")
	}

	// 2. 初始化
	lu.init(matrix)

	// 3. 逐列执行高斯消元（按主元列k遍历）
	for k := 0; k < lu.n; k++ {
		// 步骤1：部分主元选择 - 在U的当前列k中找[k, n-1]行的最大模值
		maxRow := k
		maxAbsVal := Abs(lu.U.Get(k, k))
		for i := k + 1; i < lu.n; i++ {
			if v := Abs(lu.U.Get(i, k)); v > maxAbsVal {
				maxAbsVal = v
				maxRow = i
			}
		}

		// 检查矩阵是否奇异（主元接近零）
		if maxAbsVal < Epsilon {
			return errors.New("lu dense decompose: matrix is singular or nearly singular")
		}

		// 步骤2：行交换（如果找到的主元不在当前行）
		if maxRow != k {
			// 交换U矩阵的整行
			lu.U.SwapRows(k, maxRow)
			// 交换L矩阵的前k-1列（只交换已填充的消元因子）
			for j := 0; j < k; j++ {
				val1 := lu.L.Get(k, j)
				val2 := lu.L.Get(maxRow, j)
				lu.L.Set(k, j, val2)
				lu.L.Set(maxRow, j, val1)
			}
			// 更新置换向量
			lu.updatePermutation(k, maxRow)
		}

		// 步骤3：高斯消元
		pivotVal := lu.U.Get(k, k) // 主元值
		var zero T
		for i := k + 1; i < lu.n; i++ {
			// 计算消元因子：L[i][k] = U[i][k] / 主元值
			factor := lu.U.Get(i, k) / pivotVal
			lu.L.Set(i, k, factor) // 存入L矩阵（严格下三角部分）
			lu.U.Set(i, k, zero)   // 显式置零（数值稳定性）

			// 消元更新U矩阵：U[i][j] -= 因子 * U[k][j]（j >= k+1）
			for j := k + 1; j < lu.n; j++ {
				newVal := lu.U.Get(i, j) - factor*lu.U.Get(k, j)
				lu.U.Set(i, j, newVal)
			}
		}
	}
	return nil
}

// SolveReuse 利用分解结果求解Ax=b（重用预分配向量，无内存额外分配）
// 参数:
//
//	b - 右侧向量b
//	x - 输出向量x（用于存储解）
//
// 返回:
//
//	错误信息（如果向量维度不匹配或矩阵奇异）
//
// 数学步骤:
//  1. 前向替换：求解Ly = Pb（Pb为b按置换向量P重新排序）
//  2. 后向替换：求解Ux = y
//
// 注意:
//
//	解x已经是原始顺序，无需额外重新排序
func (lu *luDense[T]) SolveReuse(b, x Vector[T]) error {
	// 1. 输入合法性校验
	if b.Length() != lu.n || x.Length() != lu.n {
		return errors.New("lu dense solve: vector dimension mismatch")
	}

	// 2. 前向替换：求解Ly = Pb
	lu.Y.Zero() // 清零中间向量
	for i := 0; i < lu.n; i++ {
		// 初始值 = Pb[i] = b[原始行索引] = b[lu.P[i]]
		sum := b.Get(lu.P[i])
		// 累加L[i][j] * Y[j]（j < i，L严格下三角）
		for j := 0; j < i; j++ {
			sum -= lu.L.Get(i, j) * lu.Y.Get(j)
		}
		lu.Y.Set(i, sum)
	}

	// 3. 后向替换：求解Ux = y
	x.Zero() // 清零输出向量
	for i := lu.n - 1; i >= 0; i-- {
		sum := lu.Y.Get(i)
		// 累加U[i][j] * x[j]（j > i，U上三角）
		for j := i + 1; j < lu.n; j++ {
			sum -= lu.U.Get(i, j) * x.Get(j)
		}
		// 求解x[i] = sum / U[i][i]（U对角线为非零主元）
		diagVal := lu.U.Get(i, i)
		if Abs(diagVal) < Epsilon {
			return errors.New("lu dense solve: division by zero (U diagonal is zero)")
		}
		x.Set(i, sum/diagVal)
	}

	return nil
}

// RelativeResidual 计算解x对方程组Ax=b的相对残差 ‖Ax-b‖∞ / ‖b‖∞
// 参数:
//
//	a - 系数矩阵A
//	x - 候选解向量
//	b - 右侧向量
//
// 返回:
//
//	相对残差值（b为零向量时返回绝对残差）
func RelativeResidual[T Number](a Matrix[T], x, b Vector[T]) float64 {
	ax := a.MatrixVectorMultiply(x)
	maxDiff := 0.0
	for i := 0; i < b.Length(); i++ {
		if d := Abs(ax.Get(i) - b.Get(i)); d > maxDiff {
			maxDiff = d
		}
	}
	norm := b.MaxAbs()
	if norm < Epsilon {
		return maxDiff
	}
	return maxDiff / norm
}
