// Package command defines the console command vocabulary: names, aliases, help
// text and the handler each resolves to. Executing a command is the console's job.
package command

// Categories for organizing commands.
const (
	CategoryMovement      = "movement"
	CategoryCombat        = "combat"
	CategoryCommunication = "communication"
	CategoryContainers    = "containers"
	CategorySystem        = "system"
)

// Handler identifiers mapping commands to console handlers.
const (
	HandlerWalk         = "walk"
	HandlerAutoWalk     = "autowalk"
	HandlerTurn         = "turn"
	HandlerStop         = "stop"
	HandlerAttack       = "attack"
	HandlerFollow       = "follow"
	HandlerUnattack     = "unattack"
	HandlerFight        = "fight"
	HandlerChase        = "chase"
	HandlerSafe         = "safe"
	HandlerSay          = "say"
	HandlerWhisper      = "whisper"
	HandlerYell         = "yell"
	HandlerTell         = "tell"
	HandlerChannels     = "channels"
	HandlerJoin         = "join"
	HandlerLeave        = "leave"
	HandlerChannel      = "channel"
	HandlerVip          = "vip"
	HandlerOpen         = "open"
	HandlerClose        = "close"
	HandlerUpContainer  = "upcontainer"
	HandlerContainers   = "containers"
	HandlerPing         = "ping"
	HandlerStatus       = "status"
	HandlerLogout       = "logout"
	HandlerQuit         = "quit"
	HandlerHelp         = "help"
	HandlerProtocolInfo = "protocol"
)

// Command defines a console command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the arguments, empty when there are none.
	Usage string
	// Help is the short help text.
	Help string
	// Category groups the command in help output.
	Category string
	// Handler selects the console handler.
	Handler string
}

// BuiltinCommands returns all built-in console commands.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"n"}, Help: "Step north", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "south", Aliases: []string{"s"}, Help: "Step south", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "east", Aliases: []string{"e"}, Help: "Step east", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "west", Aliases: []string{"w"}, Help: "Step west", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "northeast", Aliases: []string{"ne"}, Help: "Step northeast", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "northwest", Aliases: []string{"nw"}, Help: "Step northwest", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "southeast", Aliases: []string{"se"}, Help: "Step southeast", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "southwest", Aliases: []string{"sw"}, Help: "Step southwest", Category: CategoryMovement, Handler: HandlerWalk},
		{Name: "path", Aliases: []string{"go"}, Usage: "<dir>...", Help: "Walk a path of steps", Category: CategoryMovement, Handler: HandlerAutoWalk},
		{Name: "turn", Aliases: []string{"face"}, Usage: "<n|e|s|w>", Help: "Turn without moving", Category: CategoryMovement, Handler: HandlerTurn},
		{Name: "stop", Aliases: nil, Help: "Stop walking", Category: CategoryMovement, Handler: HandlerStop},

		// Combat commands
		{Name: "attack", Aliases: []string{"att", "kill"}, Usage: "<creature id>", Help: "Attack a creature, again to stop", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "follow", Aliases: []string{"fol"}, Usage: "<creature id>", Help: "Follow a creature, again to stop", Category: CategoryCombat, Handler: HandlerFollow},
		{Name: "unattack", Aliases: []string{"ua"}, Help: "Stop attacking and following", Category: CategoryCombat, Handler: HandlerUnattack},
		{Name: "fight", Aliases: nil, Usage: "<offensive|balanced|defensive>", Help: "Set the fight mode", Category: CategoryCombat, Handler: HandlerFight},
		{Name: "chase", Aliases: nil, Usage: "<chase|stand>", Help: "Set the chase mode", Category: CategoryCombat, Handler: HandlerChase},
		{Name: "safe", Aliases: nil, Usage: "<on|off>", Help: "Toggle secure fighting", Category: CategoryCombat, Handler: HandlerSafe},

		// Communication commands
		{Name: "say", Aliases: []string{"'"}, Usage: "<message>", Help: "Say something nearby", Category: CategoryCommunication, Handler: HandlerSay},
		{Name: "whisper", Aliases: []string{"wh"}, Usage: "<message>", Help: "Whisper to adjacent players", Category: CategoryCommunication, Handler: HandlerWhisper},
		{Name: "yell", Aliases: []string{"y"}, Usage: "<message>", Help: "Yell far and wide", Category: CategoryCommunication, Handler: HandlerYell},
		{Name: "tell", Aliases: []string{"pm"}, Usage: "<player> <message>", Help: "Send a private message", Category: CategoryCommunication, Handler: HandlerTell},
		{Name: "channels", Aliases: nil, Help: "Request the channel list", Category: CategoryCommunication, Handler: HandlerChannels},
		{Name: "join", Aliases: nil, Usage: "<channel id>", Help: "Join a channel", Category: CategoryCommunication, Handler: HandlerJoin},
		{Name: "leave", Aliases: nil, Usage: "<channel id>", Help: "Leave a channel", Category: CategoryCommunication, Handler: HandlerLeave},
		{Name: "channel", Aliases: []string{"ch"}, Usage: "<channel id> <message>", Help: "Talk in a channel", Category: CategoryCommunication, Handler: HandlerChannel},
		{Name: "vip", Aliases: nil, Usage: "<add name|remove id>", Help: "Edit the VIP list", Category: CategoryCommunication, Handler: HandlerVip},

		// Container commands
		{Name: "open", Aliases: nil, Usage: "<container> <slot> [here]", Help: "Open an item in a container, optionally in the same window", Category: CategoryContainers, Handler: HandlerOpen},
		{Name: "close", Aliases: nil, Usage: "<container>", Help: "Close a container", Category: CategoryContainers, Handler: HandlerClose},
		{Name: "up", Aliases: nil, Usage: "<container>", Help: "Show the parent container", Category: CategoryContainers, Handler: HandlerUpContainer},
		{Name: "containers", Aliases: []string{"bags"}, Help: "List open containers", Category: CategoryContainers, Handler: HandlerContainers},

		// System commands
		{Name: "ping", Aliases: nil, Help: "Measure the round trip to the server", Category: CategorySystem, Handler: HandlerPing},
		{Name: "status", Aliases: []string{"stat"}, Help: "Show the session state", Category: CategorySystem, Handler: HandlerStatus},
		{Name: "protocol", Aliases: []string{"features"}, Help: "Show the protocol version and features", Category: CategorySystem, Handler: HandlerProtocolInfo},
		{Name: "logout", Aliases: nil, Help: "Log out when it is safe", Category: CategorySystem, Handler: HandlerLogout},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Drop the connection and exit", Category: CategorySystem, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
	}
}

// IsMovementCommand reports whether the command name is a walk direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west",
		"northeast", "northwest", "southeast", "southwest":
		return true
	default:
		return false
	}
}
