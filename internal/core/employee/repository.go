package employee

import "context"

// Storage はローカル名簿を保存する単一のキー・バリュースロットの抽象です。
// スロットが存在しない場合 Load は ErrSlotNotFound を返し、
// 解釈できない内容の場合は ErrCorruptSnapshot をラップして返します。
type Storage interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// RemoteSource はリモート名簿の取得元です。
type RemoteSource interface {
	FetchEmployees(ctx context.Context) ([]RemoteEmployee, error)
}
