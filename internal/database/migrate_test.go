package database

import (
	"strings"
	"testing"
)

// readMigration は埋め込みマイグレーションファイルの内容を返す。
func readMigration(t *testing.T, name string) string {
	t.Helper()
	data, err := migrationsFS.ReadFile("migrations/" + name)
	if err != nil {
		t.Fatalf("failed to read migration %s: %v", name, err)
	}
	return string(data)
}

// TestMigrations_AllFilesHavePairs は全マイグレーションにup/downの対があることを検証する。
func TestMigrations_AllFilesHavePairs(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("failed to read migrations dir: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file: %s", name)
		}
	}

	for base := range ups {
		if !downs[base] {
			t.Errorf("missing down migration for %s", base)
		}
	}
	for base := range downs {
		if !ups[base] {
			t.Errorf("missing up migration for %s", base)
		}
	}
}

// TestMigrations_FollowConstraints はフォローエッジの一意性・自己フォロー禁止が
// ストレージ層の制約として宣言されていることを検証する。
func TestMigrations_FollowConstraints(t *testing.T) {
	sql := readMigration(t, "000004_create_follows.up.sql")

	if !strings.Contains(sql, "PRIMARY KEY (follower_id, following_id)") {
		t.Error("follows table should declare a composite primary key on (follower_id, following_id)")
	}
	if !strings.Contains(sql, "CHECK (follower_id <> following_id)") {
		t.Error("follows table should declare a self-follow CHECK constraint")
	}
}

// TestMigrations_BookmarkConstraints はブックマークエッジの一意性制約を検証する。
func TestMigrations_BookmarkConstraints(t *testing.T) {
	sql := readMigration(t, "000005_create_bookmarks.up.sql")

	if !strings.Contains(sql, "UNIQUE (user_id, story_id)") {
		t.Error("bookmarks table should declare UNIQUE (user_id, story_id)")
	}
}

// TestMigrations_UsersEmailUnique はメールアドレスの一意性制約を検証する。
func TestMigrations_UsersEmailUnique(t *testing.T) {
	sql := readMigration(t, "000001_create_users.up.sql")

	if !strings.Contains(sql, "UNIQUE (email)") {
		t.Error("users table should declare UNIQUE (email)")
	}
}

// TestMigrations_ForeignKeysRestrict は子テーブルの外部キーがRESTRICTで
// 宣言されていることを検証する。削除順序はカスケードコーディネーターが制御する。
func TestMigrations_ForeignKeysRestrict(t *testing.T) {
	for _, name := range []string{
		"000002_create_stories.up.sql",
		"000003_create_comments.up.sql",
		"000004_create_follows.up.sql",
		"000005_create_bookmarks.up.sql",
	} {
		sql := readMigration(t, name)
		if !strings.Contains(sql, "ON DELETE RESTRICT") {
			t.Errorf("%s: foreign keys should use ON DELETE RESTRICT", name)
		}
		if strings.Contains(sql, "ON DELETE CASCADE") {
			t.Errorf("%s: DB-level cascade is not used; the cascade coordinator owns deletion order", name)
		}
	}
}
