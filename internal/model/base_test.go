package model

import (
	"testing"
	"time"
)

// ── DateOnly ──

func TestDateOnly_Parse(t *testing.T) {
	d := DateOnly("2026-08-31")

	got, err := d.Parse()
	if err != nil {
		t.Fatalf("Parse 应成功: %v", err)
	}
	y, m, day := got.Date()
	if y != 2026 || m != time.August || day != 31 {
		t.Errorf("解析结果错误: %v", got)
	}
	if got.Location() != time.Local {
		t.Error("应解析到本地时区")
	}
}

func TestDateOnly_ParseInvalid(t *testing.T) {
	if _, err := DateOnly("31/08/2026").Parse(); err == nil {
		t.Error("非法格式应返回错误")
	}
	if _, err := DateOnly("").Parse(); err == nil {
		t.Error("空串应返回错误")
	}
}

func TestDateOnly_ScanTruncatesTime(t *testing.T) {
	var d DateOnly
	if err := d.Scan("2026-08-31T00:00:00Z"); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	// 附带时间部分时只保留日历日
	if d != "2026-08-31" {
		t.Errorf("期望 2026-08-31，实际=%s", d)
	}
}

func TestDateOnly_ScanTime(t *testing.T) {
	var d DateOnly
	if err := d.Scan(time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if d != "2026-08-31" {
		t.Errorf("期望 2026-08-31，实际=%s", d)
	}
}

func TestDateOnly_ValueNullWhenEmpty(t *testing.T) {
	v, err := DateOnly("").Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}
	if v != nil {
		t.Errorf("空值应写 NULL，实际=%v", v)
	}
}

// ── StringArray ──

func TestStringArray_RoundTrip(t *testing.T) {
	src := StringArray{"抖音", "朋友介绍"}

	v, err := src.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}

	var dst StringArray
	if err := dst.Scan(v); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(dst) != 2 || dst[0] != "抖音" || dst[1] != "朋友介绍" {
		t.Errorf("往返结果错误: %v", dst)
	}
}

func TestStringArray_ScanEmpty(t *testing.T) {
	var a StringArray
	if err := a.Scan("{}"); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(a) != 0 {
		t.Errorf("空数组应返回零长度，实际=%v", a)
	}
}

func TestStringArray_RoundTripSpecialChars(t *testing.T) {
	// 逗号、引号、反斜杠都应原样往返
	src := StringArray{`朋友介绍，线下`, `渠道"A"`, `路径\tag`}

	v, err := src.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}

	var dst StringArray
	if err := dst.Scan(v); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(dst) != len(src) {
		t.Fatalf("期望 %d 个元素，实际=%v", len(src), dst)
	}
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("元素 %d 往返错误: 期望 %q，实际 %q", i, src[i], dst[i])
		}
	}
}

func TestStringArray_ScanQuotedComma(t *testing.T) {
	var a StringArray
	if err := a.Scan(`{"a,b",c}`); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(a) != 2 || a[0] != "a,b" || a[1] != "c" {
		t.Errorf("引号内逗号不应拆分元素，实际=%v", a)
	}
}

func TestStringArray_ScanMalformed(t *testing.T) {
	var a StringArray
	if err := a.Scan("not-an-array"); err == nil {
		t.Error("缺少花括号应返回错误")
	}
	if err := a.Scan(`{"unclosed}`); err == nil {
		t.Error("引号未闭合应返回错误")
	}
}
