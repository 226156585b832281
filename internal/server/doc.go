// Package server は、フロントエンドの静的ファイルをHTTPで配信します。
//
// このパッケージは、待ち受けソケットの確保、リクエストごとの
// ファイル解決、全レスポンスへの共通ヘッダー付与を担当します。
//
// 責務:
//   - 全インターフェースの固定ポートでの待ち受け
//   - ルートディレクトリからのファイル配信（ディレクトリはindex.htmlまたは一覧）
//   - 拡張子に応じたContent-Typeの設定（.ts/.tsxはJavaScriptとして配信）
//   - CORS許可とキャッシュ無効化ヘッダーの付与
//   - アクセスログの出力
//
// 仕様:
//   - ルーティングとミドルウェアはgin-gonic/ginを使用
//   - ファイル配信はnet/httpのServeContent/FileServerを使用
//   - 待ち受けソケットにはnetパッケージがSO_REUSEADDRを設定するため、再起動直後でも同じポートを使える
//   - シグナル受信時は処理中のリクエストを待たずに停止する
package server
