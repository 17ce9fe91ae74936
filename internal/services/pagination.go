package services

// Page 分页元数据
type Page struct {
	Number      int   // 当前页（已钳制）
	Size        int   // 每页条数
	Total       int64 // 总条数
	NumPages    int   // 总页数，空集合时为 1
	HasNext     bool
	HasPrevious bool
}

// Offset 当前页第一条记录的偏移量
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// NextNumber 下一页页码，没有下一页时为当前页
func (p Page) NextNumber() int {
	if p.HasNext {
		return p.Number + 1
	}
	return p.Number
}

// PreviousNumber 上一页页码，没有上一页时为当前页
func (p Page) PreviousNumber() int {
	if p.HasPrevious {
		return p.Number - 1
	}
	return p.Number
}

// NewPage 根据总条数计算第 number 页的元数据。
// 空集合视为 1 页 0 条；页码越界（包括小于 1）钳制到最后一页。
func NewPage(total int64, size, number int) Page {
	if size <= 0 {
		size = 1
	}
	if total < 0 {
		total = 0
	}

	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages == 0 {
		numPages = 1
	}
	if number < 1 || number > numPages {
		number = numPages
	}

	return Page{
		Number:      number,
		Size:        size,
		Total:       total,
		NumPages:    numPages,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}
}

// Paginate 对已排序的切片分页
func Paginate[T any](items []T, size, number int) ([]T, Page) {
	page := NewPage(int64(len(items)), size, number)
	start := page.Offset()
	end := start + page.Size
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end], page
}
