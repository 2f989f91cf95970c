package types

import "math"

// 多极展开的平铺索引：度 n=1..n_stop，级 m=-n..n。
// 每个系数族共 L = n_stop*(n_stop+2) 个槽位，(n,m) 映射到
// idx = n*(n+1)-1+m，保证按 n 递增、m 递增连续排列，
// 度 n 占用区间 [n*n-1, n*n+2n-1]。

// Slots 返回截断阶 order 下单个系数族的槽位总数
func Slots(order int) int {
	return order * (order + 2)
}

// Idx 返回 (n,m) 的平铺下标
func Idx(n, m int) int {
	return n*(n+1) - 1 + m
}

// Degree 返回平铺下标 idx 对应的 (n,m)
func Degree(idx int) (n, m int) {
	n = int(math.Sqrt(float64(idx + 1)))
	if (n+1)*(n+1)-1 <= idx {
		n++
	}
	m = idx + 1 - n*(n+1)
	return n, m
}
