// Package main provides localization for the framelabel CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Configuration": "設定",
		"Logging":       "ログ",

		// Root command
		"Label video frames and slice labeled repetitions into clips": "動画フレームにラベルを付け、反復区間をクリップに切り出す",
		"framelabel version %s": "framelabel バージョン %s",
		"Show version information": "バージョン情報を表示",

		// Global flags
		"YAML configuration file":              "YAML設定ファイル",
		"Path to ffmpeg executable":            "ffmpeg実行ファイルのパス",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Label command
		"Step through a video and record repetition ranges":     "動画をコマ送りして反復区間を記録",
		"[video file or folder]":                                "[動画ファイルまたはフォルダ]",
		"Workbook receiving the recorded ranges":                "記録した区間を書き込むワークブック",
		"Folder for frame snapshots; empty disables them":       "フレームスナップショットの保存先（空なら無効）",
		"Snapshot width in pixels (0 keeps the frame width)":    "スナップショットの幅（ピクセル、0 でフレーム幅のまま）",
		"Frame preview width in terminal columns (0 hides it)":  "フレームプレビューの幅（端末の桁数、0 で非表示）",
		"File receiving log output while the terminal UI runs": "端末UI実行中のログ出力先ファイル",

		// Slice command
		"Cut clips from videos using frame ranges in a workbook":                   "ワークブックのフレーム範囲で動画からクリップを切り出す",
		"[workbook]":                                                               "[ワークブック]",
		"Folder containing the source videos":                                      "元動画のフォルダ",
		"Folder receiving the clip folders":                                        "クリップフォルダの出力先",
		"Output container (mp4, mov, avi); default keeps the source container":     "出力コンテナ（mp4, mov, avi）。省略時は元動画と同じ",
		"Video CRF value (0-51, lower is better)":                                  "動画のCRF値（0-51、低いほど高品質）",
		"Sheet and video pair as sheet=video; repeatable":                          "シートと動画の組（sheet=video）。複数指定可",
		"Output execution summary to file (Markdown format)":                       "実行サマリーをファイルに出力（Markdown形式）",
		"A workbook is required":                                                   "ワークブックの指定が必要です",
		"%d of %d videos could not be sliced":                                      "%d / %d 本の動画を切り出せませんでした",
		"Summary saved to %s":                                                      "サマリーを %s に保存しました",
		"Failed to write summary: %s":                                              "サマリーの書き込みに失敗しました: %s",
		"Interrupted, shutting down...":                                            "中断されました。シャットダウン中...",
		"ffmpeg was not found; install it or pass --ffmpeg":                        "ffmpeg が見つかりません。インストールするか --ffmpeg を指定してください",

		// Probe command
		"Show frame count, rate and size of videos": "動画のフレーム数・フレームレート・サイズを表示",
		"video...":                                  "動画...",
		"At least one video is required":            "動画を1つ以上指定してください",
		"%d of %d videos could not be probed":       "%d / %d 本の動画を解析できませんでした",
		"Codec":                                     "コーデック",
		"Size":                                      "サイズ",
		"FPS":                                       "FPS",
		"Duration":                                  "再生時間",

		// Summary content
		"Slicing Summary": "切り出しサマリー",
		"Generated":       "生成日時",
		"Workbook":        "ワークブック",
		"Output":          "出力先",
		"Container":       "コンテナ",
		"Quality (CRF)":   "品質（CRF）",
		"same as source":  "元動画と同じ",
		"Totals":          "合計",
		"Total":           "合計",
		"Videos":          "動画数",
		"Video":           "動画",
		"Sheet":           "シート",
		"Clip folder":     "クリップフォルダ",
		"Frames":          "フレーム",
		"Repetitions":     "反復数",
		"Written":         "書き出し",
		"Truncated":       "途中終了",
		"Empty":           "空",
		"Skipped":         "スキップ",
		"Failed":          "失敗",
		"Status":          "状態",
		"Error":           "エラー",
		"Notes":           "備考",
		"ok":              "成功",
		"error":           "エラー",
	})
}
