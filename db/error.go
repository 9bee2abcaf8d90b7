package db

import (
	"errors"
)

const (
	MsgConnectToPostgresFailed    = "connect to postgres failed"
	MsgDbConnectionNotAvailable   = "postgres connection is not established"
	MsgBeginTransactionFailed     = "begin transaction failed"
	MsgCommitTransactionFailed    = "commit transaction failed"
	MsgRollbackTransactionFailed  = "revert transaction failed"
	MsgTransactionAlreadyAssigned = "connector already runs inside a transaction"
)

var (
	ErrConnectToPostgresFailed    = errors.New(MsgConnectToPostgresFailed)
	ErrDbConnectionNotAvailable   = errors.New(MsgDbConnectionNotAvailable)
	ErrBeginTransactionFailed     = errors.New(MsgBeginTransactionFailed)
	ErrCommitTransactionFailed    = errors.New(MsgCommitTransactionFailed)
	ErrRollbackTransactionFailed  = errors.New(MsgRollbackTransactionFailed)
	ErrTransactionAlreadyAssigned = errors.New(MsgTransactionAlreadyAssigned)
)
