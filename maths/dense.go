package maths

import (
	"fmt"
	"strings"
)

// denseVector 稠密向量实现（底层为连续切片）
type denseVector[T Number] struct {
	data []T
}

// NewDenseVector 创建新的稠密向量
func NewDenseVector[T Number](length int) Vector[T] {
	if length < 0 {
		panic("vector length cannot be negative")
	}
	return &denseVector[T]{data: make([]T, length)}
}

// NewDenseVectorWithData 从现有数据创建稠密向量（不复制底层切片）
func NewDenseVectorWithData[T Number](data []T) Vector[T] {
	return &denseVector[T]{data: data}
}

// Length 返回向量长度
func (v *denseVector[T]) Length() int {
	return len(v.data)
}

// String 返回向量的字符串表示
func (v *denseVector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", x)
	}
	sb.WriteByte(']')
	return sb.String()
}

// Get 获取指定位置的元素值
func (v *denseVector[T]) Get(index int) T {
	return v.data[index]
}

// Set 设置向量元素值
func (v *denseVector[T]) Set(index int, value T) {
	v.data[index] = value
}

// Increment 增量设置向量元素（累加值）
func (v *denseVector[T]) Increment(index int, value T) {
	v.data[index] += value
}

// ToDense 转换为稠密切片（返回底层引用）
func (v *denseVector[T]) ToDense() []T {
	return v.data
}

// Zero 清空向量，重置为零向量
func (v *denseVector[T]) Zero() {
	var zero T
	for i := range v.data {
		v.data[i] = zero
	}
}

// Copy 将自身值复制到 a 向量
func (v *denseVector[T]) Copy(a Vector[T]) {
	if a.Length() != len(v.data) {
		panic("vector dimension mismatch")
	}
	switch target := a.(type) {
	case *denseVector[T]:
		copy(target.data, v.data)
	default:
		// 对于其他类型的向量实现，逐个元素复制
		for i, x := range v.data {
			a.Set(i, x)
		}
	}
}

// Scale 向量缩放
func (v *denseVector[T]) Scale(scalar T) {
	for i := range v.data {
		v.data[i] *= scalar
	}
}

// Add 向量加法
func (v *denseVector[T]) Add(other Vector[T]) {
	if other.Length() != len(v.data) {
		panic("vector dimension mismatch")
	}
	for i := range v.data {
		v.data[i] += other.Get(i)
	}
}

// MaxAbs 返回元素绝对值的最大值
func (v *denseVector[T]) MaxAbs() float64 {
	max := 0.0
	for _, x := range v.data {
		if a := Abs(x); a > max {
			max = a
		}
	}
	return max
}

// denseMatrix 稠密矩阵实现（行优先连续存储）
type denseMatrix[T Number] struct {
	rows, cols int
	data       []T
}

// NewDenseMatrix 创建新的稠密矩阵（全零初始化）
func NewDenseMatrix[T Number](rows, cols int) Matrix[T] {
	if rows < 0 || cols < 0 {
		panic("matrix dimensions cannot be negative")
	}
	return &denseMatrix[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}
}

// Rows 返回矩阵行数
func (m *denseMatrix[T]) Rows() int {
	return m.rows
}

// Cols 返回矩阵列数
func (m *denseMatrix[T]) Cols() int {
	return m.cols
}

// String 返回矩阵的字符串表示（按行换行）
func (m *denseMatrix[T]) String() string {
	var sb strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%v", m.data[r*m.cols+c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// IsSquare 判断是否为方阵
func (m *denseMatrix[T]) IsSquare() bool {
	return m.rows == m.cols
}

// checkBounds 检查给定的行和列索引是否在矩阵边界内
func (m *denseMatrix[T]) checkBounds(row, col int) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("matrix index out of range: (%d, %d) with size %dx%d", row, col, m.rows, m.cols))
	}
}

// Get 获取指定行列元素值
func (m *denseMatrix[T]) Get(row, col int) T {
	m.checkBounds(row, col)
	return m.data[row*m.cols+col]
}

// Set 设置指定行列元素值
func (m *denseMatrix[T]) Set(row, col int, value T) {
	m.checkBounds(row, col)
	m.data[row*m.cols+col] = value
}

// Increment 增量更新元素
func (m *denseMatrix[T]) Increment(row, col int, value T) {
	m.checkBounds(row, col)
	m.data[row*m.cols+col] += value
}

// Zero 清空矩阵为零矩阵
func (m *denseMatrix[T]) Zero() {
	var zero T
	for i := range m.data {
		m.data[i] = zero
	}
}

// Copy 将自身数据复制到目标矩阵a
func (m *denseMatrix[T]) Copy(a Matrix[T]) {
	if a.Rows() != m.rows || a.Cols() != m.cols {
		panic("matrix dimension mismatch for copy")
	}
	switch target := a.(type) {
	case *denseMatrix[T]:
		copy(target.data, m.data)
	default:
		for r := 0; r < m.rows; r++ {
			for c := 0; c < m.cols; c++ {
				a.Set(r, c, m.data[r*m.cols+c])
			}
		}
	}
}

// SwapRows 交换两行
func (m *denseMatrix[T]) SwapRows(row1, row2 int) {
	m.checkBounds(row1, 0)
	m.checkBounds(row2, 0)
	if row1 == row2 {
		return
	}
	r1 := m.data[row1*m.cols : (row1+1)*m.cols]
	r2 := m.data[row2*m.cols : (row2+1)*m.cols]
	for i := range r1 {
		r1[i], r2[i] = r2[i], r1[i]
	}
}

// MatrixVectorMultiply 矩阵向量乘法（返回A*x）
func (m *denseMatrix[T]) MatrixVectorMultiply(x Vector[T]) Vector[T] {
	if x.Length() != m.cols {
		panic(fmt.Sprintf("vector dimension mismatch: x length=%d, matrix cols=%d", x.Length(), m.cols))
	}
	result := NewDenseVector[T](m.rows)
	for i := 0; i < m.rows; i++ {
		var sum T
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, a := range row {
			sum += a * x.Get(j)
		}
		result.Set(i, sum)
	}
	return result
}
