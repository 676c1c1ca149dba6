package oui

// builtinOUIs covers the manufacturers most often seen on home and office
// networks: virtualization stacks, single-board computers, consumer
// routers, and the major phone and laptop makers. Prefixes outside this
// table can still resolve through the IEEE database fallback.
var builtinOUIs = map[string]string{
	// Virtualization
	"00:0C:29": "VMware",
	"00:50:56": "VMware",
	"00:1C:42": "Parallels",
	"08:00:27": "VirtualBox",
	"52:54:00": "QEMU/KVM",
	"00:15:5D": "Microsoft Hyper-V",

	// Microsoft
	"00:03:FF": "Microsoft",
	"00:0D:3A": "Microsoft",
	"00:12:5A": "Microsoft",

	// Raspberry Pi
	"B8:27:EB": "Raspberry Pi",
	"DC:A6:32": "Raspberry Pi",
	"E4:5F:01": "Raspberry Pi",
	"28:CD:C1": "Raspberry Pi",
	"D8:3A:DD": "Raspberry Pi",

	// Apple
	"00:03:93": "Apple",
	"00:0A:27": "Apple",
	"00:0A:95": "Apple",
	"00:16:CB": "Apple",
	"00:17:F2": "Apple",
	"00:1B:63": "Apple",
	"00:1E:52": "Apple",
	"00:23:12": "Apple",
	"00:25:00": "Apple",
	"00:26:BB": "Apple",
	"04:0C:CE": "Apple",
	"10:DD:B1": "Apple",
	"28:E7:CF": "Apple",
	"3C:07:54": "Apple",
	"60:33:4B": "Apple",
	"68:5B:35": "Apple",
	"7C:6D:62": "Apple",
	"88:66:5A": "Apple",
	"98:01:A7": "Apple",
	"A4:5E:60": "Apple",
	"AC:DE:48": "Apple",
	"B8:09:8A": "Apple",
	"C8:2A:14": "Apple",
	"D0:03:4B": "Apple",
	"DC:2B:2A": "Apple",
	"E0:AC:CB": "Apple",
	"F0:18:98": "Apple",
	"F4:0F:24": "Apple",
	"FC:FC:48": "Apple",

	// Cisco
	"00:04:20": "Cisco",
	"00:0B:45": "Cisco",
	"00:17:59": "Cisco",
	"00:1A:A1": "Cisco",
	"00:22:55": "Cisco",
	"00:40:96": "Cisco",
	"08:00:07": "Cisco",
	"18:8B:9D": "Cisco",
	"50:06:04": "Cisco",
	"70:DB:98": "Cisco",
	"A0:EC:F9": "Cisco",
	"D0:57:4C": "Cisco",
	"F8:66:F2": "Cisco",

	// Netgear
	"00:0F:B5": "Netgear",
	"00:14:6C": "Netgear",
	"00:1B:2F": "Netgear",
	"00:24:B2": "Netgear",
	"08:BD:43": "Netgear",
	"20:4E:7F": "Netgear",
	"44:94:FC": "Netgear",
	"9C:1C:12": "Netgear",
	"A0:40:A0": "Netgear",
	"E0:46:EE": "Netgear",

	// D-Link
	"00:07:7D": "D-Link",
	"00:11:95": "D-Link",
	"00:19:5B": "D-Link",
	"00:24:01": "D-Link",
	"14:D6:4D": "D-Link",
	"34:08:04": "D-Link",
	"90:94:E4": "D-Link",
	"C8:BE:19": "D-Link",

	// TP-Link
	"00:0E:2E": "TP-Link",
	"0C:80:63": "TP-Link",
	"14:CF:92": "TP-Link",
	"30:B5:C2": "TP-Link",
	"50:C7:BF": "TP-Link",
	"64:66:B3": "TP-Link",
	"84:16:F9": "TP-Link",
	"A0:F3:C1": "TP-Link",
	"C4:6E:1F": "TP-Link",
	"EC:08:6B": "TP-Link",
	"F4:EC:38": "TP-Link",

	// Linksys
	"00:13:10": "Linksys",
	"00:14:BF": "Linksys",
	"00:1A:70": "Linksys",
	"00:23:69": "Linksys",
	"20:AA:4B": "Linksys",
	"48:F8:B3": "Linksys",
	"94:10:3E": "Linksys",
	"C8:D7:19": "Linksys",

	// Asus
	"00:11:50": "Asus",
	"00:1E:8C": "Asus",
	"00:23:54": "Asus",
	"08:60:6E": "Asus",
	"1C:87:2C": "Asus",
	"2C:4D:54": "Asus",
	"50:46:5D": "Asus",
	"AC:9E:17": "Asus",
	"D0:17:C2": "Asus",

	// Synology
	"00:09:5B": "Synology",
	"00:11:32": "Synology",

	// Google
	"28:39:5E": "Google",
	"3C:5A:B4": "Google",
	"54:60:09": "Google",
	"6C:AD:F8": "Google",
	"A4:77:33": "Google",
	"D8:6C:63": "Google",
	"F4:F5:D8": "Google",

	// Broadcom
	"00:0A:F7": "Broadcom",
	"00:10:18": "Broadcom",
	"00:1A:11": "Broadcom",
	"3C:D9:2B": "Broadcom",
	"B8:AE:ED": "Broadcom",

	// Samsung
	"00:12:FB": "Samsung",
	"00:15:B9": "Samsung",
	"00:1D:25": "Samsung",
	"00:23:39": "Samsung",
	"08:08:C2": "Samsung",
	"18:3A:2D": "Samsung",
	"34:23:BA": "Samsung",
	"50:32:37": "Samsung",
	"78:1F:DB": "Samsung",
	"8C:77:12": "Samsung",
	"A0:21:95": "Samsung",
	"C0:BD:D1": "Samsung",
	"E8:50:8B": "Samsung",
	"F4:7B:5E": "Samsung",
}
