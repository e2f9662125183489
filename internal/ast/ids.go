package ast

type (
	// главные сущности
	FileID  uint32
	StmtID  uint32
	ExprID  uint32
	FuncID  uint32
	ClassID uint32
	// подсущности
	MemberID  uint32
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoFuncID    FuncID    = 0
	NoClassID   ClassID   = 0
	NoMemberID  MemberID  = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id StmtID) IsValid() bool    { return id != NoStmtID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id FuncID) IsValid() bool    { return id != NoFuncID }
func (id ClassID) IsValid() bool   { return id != NoClassID }
func (id MemberID) IsValid() bool  { return id != NoMemberID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
