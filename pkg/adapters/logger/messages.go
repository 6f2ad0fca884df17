package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Reading workbook %s":                                             "ワークブック %s を読み込み中",
		"Job %d/%d: sheet %s, video %s":                                   "ジョブ %d/%d: シート %s, 動画 %s",
		"Slicing completed: %d clips written, %d skipped, %d failed jobs": "切り出し完了: %d 個のクリップを書き出し, %d 件スキップ, %d 件のジョブが失敗",
		"No sheet matches a video; nothing to slice":                      "動画に対応するシートがありません。切り出す対象がありません",
		"Sheet %s has no matching video in %s":                            "シート %s に対応する動画が %s にありません",
		"Failed to resolve jobs: %s":                                      "ジョブの解決に失敗しました: %s",
		"Failed to process %s: %s":                                        "%s の処理に失敗しました: %s",

		// Extract stage
		"Slicing %s with sheet %s: %d rows, %d repetitions":                                  "%s をシート %s で切り出し中: %d 行, %d 反復",
		"Finished %s: %d clips written, %d skipped":                                          "%s 完了: %d 個のクリップを書き出し, %d 件スキップ",
		"Skipping row %d repetition %d: %s":                                                  "行 %d 反復 %d をスキップ: %s",
		"Row %d repetition %d starts at frame %d, past the end of the video; no clip written": "行 %d 反復 %d の開始フレーム %d は動画の終端を超えています。クリップは書き出しません",
		"Video ended early: saved %d of %d frames to %s":                                     "動画が途中で終了しました: %d / %d フレームを %s に保存",
		"Saved %s (%d frames)":                                                               "%s を保存しました (%d フレーム)",
		"Failed to extract row %d repetition %d: %s":                                         "行 %d 反復 %d の切り出しに失敗しました: %s",
		"Failed to write %s: %s":                                                             "%s の書き込みに失敗しました: %s",
		"start is past the end of the video":                                                 "開始フレームが動画の終端を超えています",
		"Source ended at frame %d":                                                           "フレーム %d で動画が終了しました",
		"Removed stale clip %s":                                                              "古いクリップ %s を削除しました",
		"Failed to remove stale clip %s: %s":                                                 "古いクリップ %s の削除に失敗しました: %s",

		// Video adapters
		"Probed %s: %dx%d, %d frames at %.3f fps (%s)": "%s を解析: %dx%d, %d フレーム, %.3f fps (%s)",
		"Falling back to ffprobe for %s: %s":           "%s は ffprobe で解析します: %s",
		"Decoding %s from frame %d":                    "%s をフレーム %d からデコード中",
		"ffmpeg exited: %s":                            "ffmpeg が終了しました: %s",

		// Labeler
		"Opened %s: %d frames at %.2f fps":      "%s を開きました: %d フレーム, %.2f fps",
		"Loaded %s":                             "%s を読み込みました",
		"Failed to open %s: %s":                 "%s を開けませんでした: %s",
		"Failed to close %s: %s":                "%s を閉じられませんでした: %s",
		"Failed to list %s: %s":                 "%s の一覧を取得できませんでした: %s",
		"Found %d videos in %s":                 "%d 本の動画が見つかりました (%s)",
		"No videos found in %s":                 "%s に動画が見つかりません",
		"Failed to decode frame %d: %s":         "フレーム %d のデコードに失敗しました: %s",
		"Playing":                               "再生中",
		"Paused":                                "一時停止",
		"Reached the last frame":                "最終フレームに到達しました",
		"Start marked at frame %d":              "フレーム %d を開始位置に設定しました",
		"Labeling row %d":                       "行 %d にラベル付け中",
		"Row %d repetition %d: frames %d..%d":   "行 %d 反復 %d: フレーム %d..%d",
		"Recorded repetition %d: frames %d..%d": "反復 %d を記録しました: フレーム %d..%d",
		"mark a start frame first":              "先に開始フレームを設定してください",
		"end frame %d is before start frame %d": "終了フレーム %d が開始フレーム %d より前です",
		"no labels to save":                     "保存するラベルがありません",
		"Saved %d sheets to %s":                 "%d 枚のシートを %s に保存しました",
		"Labels saved to %s":                    "ラベルを %s に保存しました",
		"Failed to save labels: %s":             "ラベルの保存に失敗しました: %s",
		"snapshots are disabled":                "スナップショットは無効です",
		"Snapshot saved to %s":                  "スナップショットを %s に保存しました",
		"Failed to save snapshot: %s":           "スナップショットの保存に失敗しました: %s",

		// Terminal UI
		"Command %T failed: %s": "コマンド %T が失敗しました: %s",
	})
}
