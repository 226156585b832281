// Package lanip は同じネットワーク上の端末から接続できるホストのIPアドレスを調べます。
//
// UDPソケットを外部アドレスへ「接続」し、OSが選んだ送信元アドレスを読み取ります。
// UDPの接続では経路が決まるだけで、パケットは送信されません。
package lanip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"
)

// Loopback は検出に失敗した場合のアドレス
const Loopback = "127.0.0.1"

// DefaultTarget は経路解決に使う外部アドレス
const DefaultTarget = "8.8.8.8:80"

// ErrNoIPv4 はローカルアドレスがIPv4ではなかったことを示す
var ErrNoIPv4 = errors.New("IPv4のローカルアドレスが得られません")

// Discoverer はLAN側のIPアドレスを検出する
type Discoverer struct {
	Target  string        // 経路解決に使うアドレス
	Timeout time.Duration // ソケット準備のタイムアウト
}

// New はデフォルト設定のDiscovererを作成する
func New() *Discoverer {
	return &Discoverer{
		Target:  DefaultTarget,
		Timeout: 2 * time.Second,
	}
}

// Discover はOSが外部への通信に使うインターフェースのIPv4アドレスを返す
func (d *Discoverer) Discover(ctx context.Context) (net.IP, error) {
	dialer := net.Dialer{Timeout: d.Timeout}

	conn, err := dialer.DialContext(ctx, "udp4", d.Target)
	if err != nil {
		return nil, fmt.Errorf("UDPソケットの接続に失敗: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("%w: 想定外のアドレス型 %T", ErrNoIPv4, conn.LocalAddr())
	}

	ip := addr.IP.To4()
	if ip == nil || ip.IsUnspecified() {
		return nil, fmt.Errorf("%w: %s", ErrNoIPv4, addr.IP)
	}

	return ip, nil
}

// Resolve はDiscoverの結果を表示用の文字列に変換する
// どんな失敗でもループバックアドレスを返し、サーバーの起動は妨げない
func (d *Discoverer) Resolve(ctx context.Context) string {
	ip, err := d.Discover(ctx)
	if err == nil {
		return ip.String()
	}

	if !isNetworkError(err) {
		// ネットワーク以外の失敗は隠さずに記録する
		log.Printf("LANアドレスの検出で予期しないエラーが発生しました: %v", err)
	}
	return Loopback
}

// isNetworkError は経路やインターフェースが無いことによる失敗かを判定する
func isNetworkError(err error) bool {
	var netErr net.Error
	var addrErr *net.AddrError
	switch {
	case errors.As(err, &netErr):
		return true
	case errors.As(err, &addrErr):
		return true
	case errors.Is(err, ErrNoIPv4):
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}
