package globe

// earthBitmap is a 120x60 equirectangular land map, north at the top.
var earthBitmap = []string{
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                             # ####### #################                                    #                           ",
	"                       #    #   ### #################            ###                                                    ",
	"                      ###  ## ####       ############ #                        ##         ########        #####         ",
	"                  ## ###   #  ### ##      ###########                         #    #### ################   ###          ",
	"      ######## ###### #### # #  #  ###     #########              #######        # ## ##################################",
	" ### ###########################    ####   #####      #          ####### ###############################################",
	"      ########################       ##    ####                #### ####################################################",
	"      ### # #################      ##        #                ##### # ##########################################  ##    ",
	"                ##############     #####                   #     #  #######################################      ##     ",
	"                 ################ #######                # #   ###########################################      ##      ",
	"                  ########################                 ################################################             ",
	"                    ###################  ##                ################################################             ",
	"                   ################### #                    ##########  ####  ############################              ",
	"                   ##################                    ##### ##  ###    ### ##########################                ",
	"                   #################                     ###       # ######## ######################  #    #            ",
	"                    ###############                       #  ###       ##############################  #  #             ",
	"                     #############                        ######        #############################                   ",
	"                       ######## #                        ############################################                   ",
	"                      # ####     #                      ##################### #######################                   ",
	"                       # ###      #                    ################# ######    #################                    ",
	"                         ###  #   #                    ################## ######     ####  #####                        ",
	"                          #####   # #                  ################## #####      ###    ####                        ",
	"                             ####                      ################### ###       ##      ####   #                   ",
	"                               #    #                  ####################           #      # ##                       ",
	"                                #  #####                #####################         #      # #     ##                 ",
	"                                   ######                #### ###############          #      #    #                    ",
	"                                   ########                     ############                 ##   ##                    ",
	"                                  #########                     ###########                   #  ####                   ",
	"                                  #############                 ##########                    ##### #     ##            ",
	"                                 ################                ########                                  ## #         ",
	"                                  ###############                #########                         ## #    # #          ",
	"                                   #############                 #########                                              ",
	"                                   ############                  #########  #                         # ##  #           ",
	"                                     ##########                 #########  ##                        ########           ",
	"                                     ##########                  #######   ##                      ###########     #    ",
	"                                     ########                    #######   #                      #############         ",
	"                                     #######                     ######                           ##############        ",
	"                                     #######                      #####                            #############        ",
	"                                     ######                       ####                             ###   ######         ",
	"                                    #####                                                                  ####       # ",
	"                                    #####                                                                              #",
	"                                    ###                                                                      #        # ",
	"                                    ###                                                                             ##  ",
	"                                    ##                                                                                  ",
	"                                   ##                                                                                   ",
	"                                    ##                                                                                  ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                                                                                                        ",
	"                                       #                                                                                ",
	"                                      #                                #  ##########   ########################         ",
	"                                   #####                 ########################## #################################   ",
	"                  # ## #   #############              #############################################################     ",
	"        ## #########################             ##################################################################     ",
	"           ######################## #  #  ##     #################################################################      ",
	"    ##################################################################################################################  ",
	"########################################################################################################################",
}
