package employee

// Source は社員レコードの出所を表します。
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// LocalIDOffset はローカル社員 ID の開始値です。リモート側の 1〜10 を避けます。
const LocalIDOffset = 11

// EmailDomain はローカル社員のメールアドレスに付与するドメインです。
const EmailDomain = "company.com"

// RemoteEmployee は外部 API から取得した読み取り専用の社員です。
type RemoteEmployee struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LocalEmployee は利用者が追加した社員です。
type LocalEmployee struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
}

// Input は社員追加フォームの入力です。
type Input struct {
	Name        string
	Designation string
	Location    string
	Salary      string
}

// Snapshot は永続化スロットに保存されるローカル名簿です。
type Snapshot struct {
	NextID    int             `json:"next_id"`
	Employees []LocalEmployee `json:"employees"`
}

// Employee は表示層へ渡す統合済みの行です。リモート行では任意項目が nil になります。
type Employee struct {
	Source      Source
	ID          int
	Name        string
	Email       string
	Designation *string
	Location    *string
	Salary      *string
}

// Deletable は行が削除可能かどうかを返します。
func (e *Employee) Deletable() bool {
	return e != nil && e.Source == SourceLocal
}

func fromRemote(r RemoteEmployee) *Employee {
	return &Employee{
		Source: SourceRemote,
		ID:     r.ID,
		Name:   r.Name,
		Email:  r.Email,
	}
}

func fromLocal(l LocalEmployee) *Employee {
	designation := l.Designation
	location := l.Location
	salary := l.Salary
	return &Employee{
		Source:      SourceLocal,
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		Designation: &designation,
		Location:    &location,
		Salary:      &salary,
	}
}
