package repository

import (
	"strings"

	"record-system/internal/csvdb"
	"record-system/internal/model"
)

// FriendFilter 好友过滤条件，空串字段不参与匹配
type FriendFilter struct {
	Name  string
	Email string
}

// FriendRepository 好友数据仓储（CSV表）
type FriendRepository struct {
	table *csvdb.Table[model.Friend]
}

// NewFriendRepository 创建FriendRepository实例
func NewFriendRepository(table *csvdb.Table[model.Friend]) *FriendRepository {
	return &FriendRepository{table: table}
}

// List 列出全部好友
func (r *FriendRepository) List() ([]model.Friend, error) {
	return r.table.List()
}

// GetByID 根据ID获取好友
func (r *FriendRepository) GetByID(id int) (model.Friend, bool, error) {
	return r.table.Get(id)
}

// Create 新增好友
func (r *FriendRepository) Create(f model.Friend) (model.Friend, error) {
	return r.table.Create(f)
}

// Update 整行替换指定ID的好友
func (r *FriendRepository) Update(id int, f model.Friend) (model.Friend, bool, error) {
	return r.table.Update(id, f)
}

// Delete 删除好友
func (r *FriendRepository) Delete(id int) (bool, error) {
	return r.table.Delete(id)
}

// Count 原始数据行数（不含表头）
func (r *FriendRepository) Count() (int, error) {
	return r.table.Count()
}

// Path 底层CSV文件路径
func (r *FriendRepository) Path() string {
	return r.table.Path()
}

// EncodedRows 表头与编码后的数据行，供导出使用
func (r *FriendRepository) EncodedRows() ([]string, [][]string, error) {
	return r.table.EncodedRows()
}

// Filter 按名称/邮箱子串过滤好友（不区分大小写）
func (r *FriendRepository) Filter(f FriendFilter) ([]model.Friend, error) {
	friends, err := r.table.List()
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(f.Name)
	email := strings.ToLower(f.Email)
	out := make([]model.Friend, 0, len(friends))
	for _, fr := range friends {
		if name != "" && !strings.Contains(strings.ToLower(fr.Name), name) {
			continue
		}
		if email != "" && !strings.Contains(strings.ToLower(fr.Email), email) {
			continue
		}
		out = append(out, fr)
	}
	return out, nil
}
