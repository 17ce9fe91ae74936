package models

// DeletePolicy 父记录删除时对子记录的处理方式
type DeletePolicy int

const (
	// Cascade 删除子记录
	Cascade DeletePolicy = iota
	// SetNull 保留子记录，外键置空
	SetNull
)

func (p DeletePolicy) String() string {
	switch p {
	case Cascade:
		return "cascade"
	case SetNull:
		return "set_null"
	default:
		return "unknown"
	}
}

// Relation 描述一条父子外键关系及其删除策略
type Relation struct {
	Parent     string // 父表
	Child      string // 子表
	ForeignKey string // 子表中的外键列
	OnDelete   DeletePolicy
}

// Relations 显式声明的删除策略，与模型上的 constraint 标签保持一致。
// 删除父记录时由 db.ApplyDeletePolicies 在同一事务中执行，
// 不依赖数据库是否开启外键约束。
var Relations = []Relation{
	{Parent: "groups", Child: "posts", ForeignKey: "group_id", OnDelete: SetNull},
	{Parent: "posts", Child: "comments", ForeignKey: "post_id", OnDelete: Cascade},
}

// RelationsOf 返回以 parent 为父表的所有关系
func RelationsOf(parent string) []Relation {
	var out []Relation
	for _, r := range Relations {
		if r.Parent == parent {
			out = append(out, r)
		}
	}
	return out
}
