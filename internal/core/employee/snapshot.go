package employee

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalSnapshot はスロットに書き込む JSON を生成します。
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	if s.Employees == nil {
		s.Employees = []LocalEmployee{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return b, nil
}

// UnmarshalSnapshot はスロットの JSON を読み取ります。
// ブラウザ版が保存していた配列のみの形式も受け付け、その場合 NextID は 0 になります。
func UnmarshalSnapshot(b []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return Snapshot{}, fmt.Errorf("%w: empty payload", ErrCorruptSnapshot)
	}

	if trimmed[0] == '[' {
		var legacy []LocalEmployee
		if err := json.Unmarshal(trimmed, &legacy); err != nil {
			return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
		}
		return Snapshot{Employees: legacy}, nil
	}

	var s Snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	return s, nil
}
