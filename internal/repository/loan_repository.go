package repository

import (
	"record-system/internal/csvdb"
	"record-system/internal/model"
)

// LoanFilter 借阅过滤条件，0 表示未传
type LoanFilter struct {
	GameID   int
	FriendID int
}

// LoanRepository 借阅数据仓储（CSV表）
type LoanRepository struct {
	table *csvdb.Table[model.Loan]
}

// NewLoanRepository 创建LoanRepository实例
func NewLoanRepository(table *csvdb.Table[model.Loan]) *LoanRepository {
	return &LoanRepository{table: table}
}

// List 列出全部借阅
func (r *LoanRepository) List() ([]model.Loan, error) {
	return r.table.List()
}

// GetByID 根据ID获取借阅
func (r *LoanRepository) GetByID(id int) (model.Loan, bool, error) {
	return r.table.Get(id)
}

// Create 新增借阅
func (r *LoanRepository) Create(l model.Loan) (model.Loan, error) {
	return r.table.Create(l)
}

// Update 整行替换指定ID的借阅
func (r *LoanRepository) Update(id int, l model.Loan) (model.Loan, bool, error) {
	return r.table.Update(id, l)
}

// Delete 删除借阅
func (r *LoanRepository) Delete(id int) (bool, error) {
	return r.table.Delete(id)
}

// Count 原始数据行数（不含表头）
func (r *LoanRepository) Count() (int, error) {
	return r.table.Count()
}

// Path 底层CSV文件路径
func (r *LoanRepository) Path() string {
	return r.table.Path()
}

// EncodedRows 表头与编码后的数据行，供导出使用
func (r *LoanRepository) EncodedRows() ([]string, [][]string, error) {
	return r.table.EncodedRows()
}

// Filter 按游戏ID/好友ID精确过滤借阅
func (r *LoanRepository) Filter(f LoanFilter) ([]model.Loan, error) {
	loans, err := r.table.List()
	if err != nil {
		return nil, err
	}
	out := make([]model.Loan, 0, len(loans))
	for _, l := range loans {
		if f.GameID != 0 && l.GameID != f.GameID {
			continue
		}
		if f.FriendID != 0 && l.FriendID != f.FriendID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// HasOtherLoanForGame 判断除 excludeLoanID 外是否仍有借阅引用该游戏
// 用于删除/改借时决定是否释放游戏
func (r *LoanRepository) HasOtherLoanForGame(gameID, excludeLoanID int) (bool, error) {
	loans, err := r.table.List()
	if err != nil {
		return false, err
	}
	for _, l := range loans {
		if l.GameID == gameID && l.ID != excludeLoanID {
			return true, nil
		}
	}
	return false, nil
}
