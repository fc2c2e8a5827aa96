//go:build linux

package notify

import "github.com/godbus/dbus/v5"

const (
	notificationsName = "org.freedesktop.Notifications"
	notificationsPath = dbus.ObjectPath("/org/freedesktop/Notifications")
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the notification daemon on the session bus. Without a
// session bus it returns a notifier that drops everything.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return stubNotifier{}, nil //nolint:nilerr // headless sessions have no bus
	}
	return &dbusNotifier{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	var id uint32
	err := n.obj.Call(notificationsName+".Notify", 0,
		appName, notif.ReplacesID, notif.Icon, notif.Title, notif.Body,
		[]string{}, hints, notif.Timeout,
	).Store(&id)
	return id, err
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(notificationsName+".CloseNotification", 0, id).Err
}
