package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// StringToUint 解析正整数 ID，失败返回 false
func StringToUint(s string) (uint, bool) {
	i, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || i == 0 {
		return 0, false
	}
	return uint(i), true
}

// ParsePage 解析 ?page= 参数：缺省或非数字时为 1。
// 数字原样返回，越界（包括小于 1）由分页逻辑钳制到最后一页。
func ParsePage(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// 超出 int 范围的数字同样视为越界页码
		if strings.HasPrefix(raw, "-") {
			return math.MinInt
		}
		return math.MaxInt
	}
	if err != nil {
		return 1
	}
	return n
}
